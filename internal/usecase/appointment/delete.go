package appointment

import (
	"context"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type DeleteAppointment struct {
	deps Deps
}

func NewDeleteAppointment(deps Deps) *DeleteAppointment {
	return &DeleteAppointment{deps: deps.withDefaults()}
}

// Execute remove o agendamento da lista antes da confirmação remota.
// Id desconhecido: nada muda e o erro appointment_not_found é devolvido.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	operatorID uint,
	appointmentID uint,
) error {

	d := uc.deps

	_, err := d.run(ctx, mutation{
		op:         "delete",
		operatorID: operatorID,
		id:         appointmentID,
		remove:     true,
		remote: func(ctx context.Context, _ models.Appointment) (*models.Appointment, error) {
			return nil, d.Repo.DeleteAppointment(ctx, operatorID, appointmentID)
		},
		action:  "appointment_deleted",
		success: "Agendamento excluído.",
		failure: "Não foi possível excluir o agendamento.",
	})
	return err
}
