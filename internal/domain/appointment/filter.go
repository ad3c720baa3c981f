package appointment

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type PriceRange struct {
	Min *float64
	Max *float64
}

// FilterState is the advanced filter of the calendar list. Empty dimensions do
// not filter.
type FilterState struct {
	Statuses        []Status
	PaymentStatuses []PaymentStatus
	StaffIDs        []uint
	DateRange       DateRange
	PriceRange      PriceRange
}

func (f FilterState) IsEmpty() bool {
	return len(f.Statuses) == 0 &&
		len(f.PaymentStatuses) == 0 &&
		len(f.StaffIDs) == 0 &&
		f.DateRange.Start == nil && f.DateRange.End == nil &&
		f.PriceRange.Min == nil && f.PriceRange.Max == nil
}

// Filter projeta a lista: E entre dimensões, OU dentro de cada uma.
//
// visibleStaff é o seletor de colunas visíveis, independente do filtro
// avançado; nil deixa todos visíveis.
func Filter(
	list []models.Appointment,
	state FilterState,
	visibleStaff []uint,
) []models.Appointment {

	if state.IsEmpty() && visibleStaff == nil {
		return append(make([]models.Appointment, 0, len(list)), list...)
	}

	statuses := setOf(state.Statuses)
	payments := setOf(state.PaymentStatuses)
	staff := setOf(state.StaffIDs)

	var visible map[uint]struct{}
	if visibleStaff != nil {
		visible = setOf(visibleStaff)
		if visible == nil {
			visible = map[uint]struct{}{}
		}
	}

	dates := state.DateRange
	if dates.Start != nil && dates.End != nil && !dates.End.After(*dates.Start) {
		dates = DateRange{}
	}
	prices := state.PriceRange
	if prices.Min != nil && prices.Max != nil && *prices.Min > *prices.Max {
		prices = PriceRange{}
	}

	out := make([]models.Appointment, 0, len(list))
	for _, ap := range list {
		if visible != nil && !has(visible, ap.StaffResourceID) {
			continue
		}
		if statuses != nil && !has(statuses, Status(ap.Status)) {
			continue
		}
		if payments != nil && !has(payments, PaymentStatus(ap.PaymentStatus)) {
			continue
		}
		if staff != nil && !has(staff, ap.StaffResourceID) {
			continue
		}
		if dates.Start != nil && ap.StartTime.Before(*dates.Start) {
			continue
		}
		if dates.End != nil && !ap.StartTime.Before(*dates.End) {
			continue
		}
		if prices.Min != nil && ap.Price < *prices.Min {
			continue
		}
		if prices.Max != nil && ap.Price > *prices.Max {
			continue
		}
		out = append(out, ap)
	}

	return out
}

func setOf[T comparable](items []T) map[T]struct{} {
	if len(items) == 0 {
		return nil
	}
	m := make(map[T]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

func has[T comparable](m map[T]struct{}, v T) bool {
	_, ok := m[v]
	return ok
}
