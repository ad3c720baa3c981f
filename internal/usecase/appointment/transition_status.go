package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// TransitionStatus aceita qualquer status a partir de qualquer outro.
type TransitionStatus struct {
	deps Deps
}

func NewTransitionStatus(deps Deps) *TransitionStatus {
	return &TransitionStatus{deps: deps.withDefaults()}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	operatorID uint,
	appointmentID uint,
	newStatus string,
) (*Outcome, error) {

	d := uc.deps

	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, d.fail(ctx, "status", operatorID, "", err)
	}

	return d.run(ctx, mutation{
		op:         "status",
		operatorID: operatorID,
		id:         appointmentID,
		apply: func(ap *models.Appointment) error {
			domain.SetStatus(ap, status)
			return nil
		},
		// reativar um cancelado volta a ocupar o horário
		guard: func(current, next models.Appointment) bool {
			return !domain.Status(current.Status).Blocks() && domain.Status(next.Status).Blocks()
		},
		remote: func(ctx context.Context, next models.Appointment) (*models.Appointment, error) {
			if err := d.Repo.UpdateStatus(ctx, operatorID, appointmentID, status); err != nil {
				return nil, err
			}
			return nil, nil
		},
		action:  "appointment_status_changed",
		success: "Status atualizado.",
		failure: "Não foi possível atualizar o status.",
	})
}
