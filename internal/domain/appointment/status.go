package appointment

import "github.com/BruksfildServices01/appointment-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

var statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ===============================
// Payment Status
// ===============================

// PaymentStatus é apenas refletido aqui; quem calcula é o registro de pagamentos.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ===============================
// Validations
// ===============================

// ParseStatus aceita qualquer status conhecido. Não existe tabela de
// transições: qualquer status pode seguir qualquer outro.
func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return PaymentStatus(s), true
	}
	return "", false
}

// InitialStatus de um agendamento recém-criado sem status explícito.
func InitialStatus() Status {
	return StatusPending
}

// Blocks reports whether an appointment in this status occupies its slot.
func (s Status) Blocks() bool {
	return s != StatusCancelled
}
