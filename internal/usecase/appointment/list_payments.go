package appointment

import (
	"context"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ListPayments só repassa o histórico; o núcleo não calcula pagamentos.
type ListPayments struct {
	deps Deps
}

func NewListPayments(deps Deps) *ListPayments {
	return &ListPayments{deps: deps.withDefaults()}
}

func (uc *ListPayments) Execute(
	ctx context.Context,
	operatorID uint,
	appointmentID uint,
) ([]models.PaymentRecord, error) {

	ws, err := uc.deps.Workspaces.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if _, ok := ws.Store.Get(appointmentID); !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	payments, err := uc.deps.Repo.ListPayments(ctx, operatorID, appointmentID)
	if err != nil {
		return nil, httperr.Remote("list_payments", err)
	}
	if payments == nil {
		payments = []models.PaymentRecord{}
	}
	return payments, nil
}
