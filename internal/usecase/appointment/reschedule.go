package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// RescheduleByDrag move o agendamento preservando a duração.
type RescheduleByDrag struct {
	deps Deps
}

func NewRescheduleByDrag(deps Deps) *RescheduleByDrag {
	return &RescheduleByDrag{deps: deps.withDefaults()}
}

func (uc *RescheduleByDrag) Execute(
	ctx context.Context,
	operatorID uint,
	appointmentID uint,
	newStart time.Time,
) (*Outcome, error) {

	return uc.deps.run(ctx, mutation{
		op:         "reschedule",
		operatorID: operatorID,
		id:         appointmentID,
		apply: func(ap *models.Appointment) error {
			return domain.Move(ap, newStart)
		},
		guard: blocking,
		remote: func(ctx context.Context, next models.Appointment) (*models.Appointment, error) {
			return uc.deps.Repo.UpdateAppointment(ctx, operatorID, appointmentID, domain.Patch{
				StartTime: &next.StartTime,
				EndTime:   &next.EndTime,
			})
		},
		action:  "appointment_moved",
		success: "Agendamento reagendado.",
		failure: "Não foi possível reagendar. O horário anterior foi restaurado.",
	})
}

// blocking: só checa conflito quando o resultado ocupa o horário.
func blocking(_, next models.Appointment) bool {
	return domain.Status(next.Status).Blocks()
}
