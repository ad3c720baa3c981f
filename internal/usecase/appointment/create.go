package appointment

import (
	"context"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment não insere de forma otimista: o id vem do servidor.
type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	operatorID uint,
	draft domain.Draft,
) (*Outcome, error) {

	const op = "create"
	d := uc.deps
	failure := "Não foi possível criar o agendamento."
	success := "Agendamento criado."

	// --------------------------------------------------
	// 1️⃣ Validação local (antes de qualquer chamada)
	// --------------------------------------------------
	ap, err := draft.ToModel(operatorID)
	if err != nil {
		return nil, d.fail(ctx, op, operatorID, failure, err)
	}

	ws, err := d.Workspaces.Get(ctx, operatorID)
	if err != nil {
		return nil, d.fail(ctx, op, operatorID, failure, err)
	}

	// --------------------------------------------------
	// 2️⃣ Conflito consultivo (desligado por padrão)
	// --------------------------------------------------
	outcome := &Outcome{Appointment: *ap}
	// sem inserção otimista não há lock a segurar; a exclusão no banco
	// continua valendo para criações simultâneas
	if d.ConflictPolicy != config.ConflictPolicyOff {
		d.checkHours(ctx, operatorID, *ap, outcome)
		if err := d.checkConflicts(ws.Store.Snapshot(), *ap, outcome); err != nil {
			return nil, d.fail(ctx, op, operatorID, failure, err)
		}
	}

	// --------------------------------------------------
	// 3️⃣ Criação remota
	// --------------------------------------------------
	created, late, err := d.callRemote(ctx, op, func(rctx context.Context) (*models.Appointment, error) {
		return d.Repo.CreateAppointment(rctx, ap)
	})
	if err != nil {
		if late != nil {
			m := mutation{op: op, operatorID: operatorID, success: success}
			go d.settle(context.WithoutCancel(ctx), m, late, nil, func(created *models.Appointment) {
				if created != nil {
					ws.Store.Append(*created)
				}
			})
		}
		return nil, d.fail(ctx, op, operatorID, failure, httperr.Remote(op, err))
	}

	// --------------------------------------------------
	// 4️⃣ Entra na lista só com o id atribuído
	// --------------------------------------------------
	ws.Store.Append(*created)
	outcome.Appointment = *created

	d.succeed(ctx, op, operatorID, success)
	d.Audit.Dispatch(audit.Event{
		OperatorID: operatorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &created.ID,
	})

	return outcome, nil
}
