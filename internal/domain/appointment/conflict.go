package appointment

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Conflict describes one existing appointment overlapping a candidate interval.
type Conflict struct {
	AppointmentID   uint      `json:"appointment_id"`
	StaffResourceID uint      `json:"staff_resource_id"`
	OverlapStart    time.Time `json:"overlap_start"`
	OverlapEnd      time.Time `json:"overlap_end"`
}

// HasConflict reports whether [start, end) overlaps any blocking appointment
// of the same staff. excludeID skips the appointment being rescheduled.
func HasConflict(
	staffID uint,
	start time.Time,
	end time.Time,
	existing []models.Appointment,
	excludeID *uint,
) bool {
	for i := range existing {
		if blocks(&existing[i], staffID, start, end, excludeID) {
			return true
		}
	}
	return false
}

// Conflicts lista todas as sobreposições, com o trecho em comum.
func Conflicts(
	staffID uint,
	start time.Time,
	end time.Time,
	existing []models.Appointment,
	excludeID *uint,
) []Conflict {
	var out []Conflict
	for i := range existing {
		ap := &existing[i]
		if !blocks(ap, staffID, start, end, excludeID) {
			continue
		}

		overlapStart := start
		if ap.StartTime.After(overlapStart) {
			overlapStart = ap.StartTime
		}
		overlapEnd := end
		if ap.EndTime.Before(overlapEnd) {
			overlapEnd = ap.EndTime
		}

		out = append(out, Conflict{
			AppointmentID:   ap.ID,
			StaffResourceID: ap.StaffResourceID,
			OverlapStart:    overlapStart,
			OverlapEnd:      overlapEnd,
		})
	}
	return out
}

func blocks(ap *models.Appointment, staffID uint, start, end time.Time, excludeID *uint) bool {
	if ap.StaffResourceID != staffID {
		return false
	}
	if !Status(ap.Status).Blocks() {
		return false
	}
	if excludeID != nil && ap.ID == *excludeID {
		return false
	}
	// intervalo semiaberto: encostar no fim não conflita
	return start.Before(ap.EndTime) && end.After(ap.StartTime)
}
