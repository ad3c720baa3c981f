package appointment

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func ValidateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return httperr.ErrBusiness(httperr.CodeInvalidInterval)
	}
	return nil
}

// Move desloca o agendamento preservando exatamente a duração.
func Move(ap *models.Appointment, newStart time.Time) error {
	newEnd := newStart.Add(ap.Duration())
	if err := ValidateInterval(newStart, newEnd); err != nil {
		return err
	}

	ap.StartTime = newStart
	ap.EndTime = newEnd
	return nil
}

func Resize(ap *models.Appointment, newStart, newEnd time.Time) error {
	if err := ValidateInterval(newStart, newEnd); err != nil {
		return err
	}

	ap.StartTime = newStart
	ap.EndTime = newEnd
	return nil
}

func SetStatus(ap *models.Appointment, status Status) {
	ap.Status = string(status)
}

// Draft is an appointment before the server assigns its id.
type Draft struct {
	Title           string
	StartTime       time.Time
	EndTime         time.Time
	StaffResourceID uint
	ClientName      string
	ServiceName     string
	Price           float64
	Status          string
}

// ToModel valida o rascunho e monta o registro a ser enviado.
func (d Draft) ToModel(operatorID uint) (*models.Appointment, error) {
	if err := ValidateInterval(d.StartTime, d.EndTime); err != nil {
		return nil, err
	}

	status := InitialStatus()
	if d.Status != "" {
		st, err := ParseStatus(d.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	price := d.Price
	if price < 0 {
		price = 0
	}

	return &models.Appointment{
		OperatorID:      operatorID,
		Title:           d.Title,
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		StaffResourceID: d.StaffResourceID,
		ClientName:      d.ClientName,
		ServiceName:     d.ServiceName,
		Price:           price,
		Status:          string(status),
		PaymentStatus:   string(PaymentPending),
	}, nil
}
