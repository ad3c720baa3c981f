package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ResizeByHandle altera início e fim de forma independente.
type ResizeByHandle struct {
	deps Deps
}

func NewResizeByHandle(deps Deps) *ResizeByHandle {
	return &ResizeByHandle{deps: deps.withDefaults()}
}

func (uc *ResizeByHandle) Execute(
	ctx context.Context,
	operatorID uint,
	appointmentID uint,
	newStart time.Time,
	newEnd time.Time,
) (*Outcome, error) {

	d := uc.deps

	// intervalo inválido é rejeitado antes de entrar na fila
	if err := domain.ValidateInterval(newStart, newEnd); err != nil {
		return nil, d.fail(ctx, "resize", operatorID, "", err)
	}

	return d.run(ctx, mutation{
		op:         "resize",
		operatorID: operatorID,
		id:         appointmentID,
		apply: func(ap *models.Appointment) error {
			return domain.Resize(ap, newStart, newEnd)
		},
		guard: blocking,
		remote: func(ctx context.Context, next models.Appointment) (*models.Appointment, error) {
			return d.Repo.UpdateAppointment(ctx, operatorID, appointmentID, domain.Patch{
				StartTime: &next.StartTime,
				EndTime:   &next.EndTime,
			})
		},
		action:  "appointment_resized",
		success: "Duração atualizada.",
		failure: "Não foi possível alterar a duração. O horário anterior foi restaurado.",
	})
}
