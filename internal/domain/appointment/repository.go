package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Patch carries the fields a scheduling update may change.
type Patch struct {
	StartTime *time.Time
	EndTime   *time.Time
}

// Repository é o colaborador remoto de persistência. Qualquer chamada pode
// falhar (rede, validação, autorização).
type Repository interface {
	// -------- Appointment --------
	ListAppointments(
		ctx context.Context,
		operatorID uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		draft *models.Appointment,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		operatorID uint,
		id uint,
		patch Patch,
	) (*models.Appointment, error)

	UpdateStatus(
		ctx context.Context,
		operatorID uint,
		id uint,
		status Status,
	) error

	DeleteAppointment(
		ctx context.Context,
		operatorID uint,
		id uint,
	) error

	// -------- Staff --------
	ListStaff(
		ctx context.Context,
		operatorID uint,
	) ([]models.StaffResource, error)

	// -------- Payments (somente leitura) --------
	ListPayments(
		ctx context.Context,
		operatorID uint,
		appointmentID uint,
	) ([]models.PaymentRecord, error)
}

type BusinessHoursRepository interface {
	GetBusinessHours(
		ctx context.Context,
		operatorID uint,
	) ([]models.BusinessDayRule, error)

	// SaveBusinessHours substitui o conjunto inteiro.
	SaveBusinessHours(
		ctx context.Context,
		operatorID uint,
		rules []models.BusinessDayRule,
	) error
}
