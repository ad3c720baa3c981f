package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
)

// ======================================================
// DEPENDENCIES
// ======================================================

// Deps is shared by every scheduling use case. Workspaces must be the same
// instance across use cases or each one keeps its own copy of the agenda.
type Deps struct {
	Repo       domain.Repository
	Hours      domain.BusinessHoursRepository
	Workspaces *Workspaces
	Notifier   notify.Notifier
	Audit      *audit.Dispatcher
	Metrics    *metrics.SchedulingMetrics
	Logger     *slog.Logger
	Location   *time.Location

	// RemoteTimeout limita cada chamada remota; zero desliga o limite.
	RemoteTimeout time.Duration
	// ConflictPolicy: off (padrão), warn ou block.
	ConflictPolicy string
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Notifier == nil {
		d.Notifier = notify.NewLog(d.Logger)
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.ConflictPolicy == "" {
		d.ConflictPolicy = config.ConflictPolicyOff
	}
	if d.Workspaces == nil && d.Repo != nil {
		d.Workspaces = NewWorkspaces(d.Repo)
	}
	return d
}

// Outcome is the result of a successful scheduling operation.
type Outcome struct {
	Appointment          models.Appointment `json:"appointment"`
	Conflicts            []domain.Conflict  `json:"conflicts,omitempty"`
	OutsideBusinessHours bool               `json:"outside_business_hours"`
}

// ======================================================
// OPTIMISTIC PROTOCOL
// ======================================================

type mutation struct {
	op         string
	operatorID uint
	id         uint

	// altera a cópia local; erros aqui são validação e nada é aplicado
	apply  func(ap *models.Appointment) error
	remove bool
	// decide se o detector consultivo roda para esta mudança
	guard func(current, next models.Appointment) bool

	remote func(ctx context.Context, next models.Appointment) (*models.Appointment, error)

	action  string
	success string
	failure string
}

// run: fila por id → aplica local → chamada remota → confirma ou desfaz.
func (d Deps) run(ctx context.Context, m mutation) (*Outcome, error) {
	ws, err := d.Workspaces.Get(ctx, m.operatorID)
	if err != nil {
		return nil, d.fail(ctx, m.op, m.operatorID, m.failure, err)
	}

	release, err := ws.Queue.Acquire(ctx, m.id)
	if err != nil {
		return nil, d.fail(ctx, m.op, m.operatorID, m.failure, httperr.ErrBusiness(httperr.CodeMutationCancelled))
	}
	// a vaga só é liberada aqui se ninguém mais a segurar (ver settle)
	held := true
	defer func() {
		if held {
			release()
		}
	}()

	current, ok := ws.Store.Get(m.id)
	if !ok {
		d.Logger.Warn("unknown appointment",
			"op", m.op,
			"operator_id", m.operatorID,
			"appointment_id", m.id,
		)
		return nil, d.fail(ctx, m.op, m.operatorID, m.failure, httperr.ErrBusiness(httperr.CodeAppointmentNotFound))
	}

	next := current
	if m.apply != nil {
		if err := m.apply(&next); err != nil {
			return nil, d.fail(ctx, m.op, m.operatorID, m.failure, err)
		}
	}

	outcome := &Outcome{Appointment: next}
	guarded := d.ConflictPolicy != config.ConflictPolicyOff && m.guard != nil && m.guard(current, next)
	if guarded {
		// expediente vem antes do lock: é uma chamada remota
		d.checkHours(ctx, m.operatorID, next, outcome)
	}

	tok, err := ws.Store.ApplyChecked(
		func(list []models.Appointment) error {
			if !guarded {
				return nil
			}
			return d.checkConflicts(list, next, outcome)
		},
		func(list []models.Appointment) []models.Appointment {
			for i := range list {
				if list[i].ID != m.id {
					continue
				}
				if m.remove {
					return append(list[:i], list[i+1:]...)
				}
				list[i] = next
				break
			}
			return list
		},
	)
	if err != nil {
		return nil, d.fail(ctx, m.op, m.operatorID, m.failure, err)
	}

	saved, late, err := d.callRemote(ctx, m.op, func(rctx context.Context) (*models.Appointment, error) {
		return m.remote(rctx, next)
	})
	if err != nil {
		ws.Store.Rollback(tok)
		d.Metrics.ObserveRollback(m.op)
		d.Audit.Dispatch(audit.Event{
			OperatorID: m.operatorID,
			Action:     "appointment_rolled_back",
			Entity:     "appointment",
			EntityID:   &m.id,
			Metadata:   map[string]any{"op": m.op, "error": err.Error()},
		})
		if late != nil {
			held = false
			go d.settle(context.WithoutCancel(ctx), m, late, release, func(ap *models.Appointment) {
				switch {
				case m.remove:
					ws.Store.Remove(m.id)
				case ap != nil:
					ws.Store.Refresh(*ap)
				default:
					ws.Store.Refresh(next)
				}
			})
		}
		return nil, d.fail(ctx, m.op, m.operatorID, m.failure, httperr.Remote(m.op, err))
	}

	ws.Store.Commit(tok)
	if saved != nil && !m.remove {
		ws.Store.Refresh(*saved)
		outcome.Appointment = *saved
	}

	d.succeed(ctx, m.op, m.operatorID, m.success)
	d.Audit.Dispatch(audit.Event{
		OperatorID: m.operatorID,
		Action:     m.action,
		Entity:     "appointment",
		EntityID:   &m.id,
	})

	return outcome, nil
}

// settle espera a resposta atrasada de uma chamada que estourou o prazo.
// A vaga da fila fica presa até o colaborador responder, e uma escrita aceita
// depois do rollback é aplicada de volta na lista local.
func (d Deps) settle(
	ctx context.Context,
	m mutation,
	late <-chan remoteResult,
	release func(),
	reconcile func(ap *models.Appointment),
) {
	if release != nil {
		defer release()
	}

	r := <-late
	if r.err != nil {
		d.Logger.Info("late remote failure after rollback",
			"op", m.op,
			"operator_id", m.operatorID,
			"appointment_id", m.id,
			"error", r.err,
		)
		return
	}

	reconcile(r.ap)
	d.Logger.Warn("late remote write reconciled",
		"op", m.op,
		"operator_id", m.operatorID,
		"appointment_id", m.id,
	)
	d.Metrics.ObserveOperation(m.op, "late_success")
	d.Notifier.Notify(ctx, m.operatorID, notify.KindSuccess, m.success)

	ev := audit.Event{
		OperatorID: m.operatorID,
		Action:     "appointment_reconciled",
		Entity:     "appointment",
		Metadata:   map[string]any{"op": m.op},
	}
	if m.id != 0 {
		ev.EntityID = &m.id
	}
	d.Audit.Dispatch(ev)
}

// checkHours marca o candidato fora do expediente. Falha ao ler o
// expediente só gera aviso.
func (d Deps) checkHours(
	ctx context.Context,
	operatorID uint,
	candidate models.Appointment,
	outcome *Outcome,
) {

	if d.Hours == nil {
		return
	}

	rules, err := d.Hours.GetBusinessHours(ctx, operatorID)
	if err != nil {
		d.Logger.Warn("business hours unavailable for advisory check",
			"operator_id", operatorID,
			"error", err,
		)
		return
	}

	outcome.OutsideBusinessHours = !domain.WithinBusinessHours(
		rules, candidate.StartTime, candidate.EndTime, d.Location,
	)
}

// checkConflicts roda o detector contra existing. Só bloqueia com a
// política block.
func (d Deps) checkConflicts(
	existing []models.Appointment,
	candidate models.Appointment,
	outcome *Outcome,
) error {

	var exclude *uint
	if candidate.ID != 0 {
		id := candidate.ID
		exclude = &id
	}

	outcome.Conflicts = domain.Conflicts(
		candidate.StaffResourceID,
		candidate.StartTime,
		candidate.EndTime,
		existing,
		exclude,
	)

	if d.ConflictPolicy == config.ConflictPolicyBlock && len(outcome.Conflicts) > 0 {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return nil
}

type remoteResult struct {
	ap  *models.Appointment
	err error
}

// callRemote limita a chamada a RemoteTimeout. Quando o prazo vence antes da
// resposta, late entrega o resultado que ainda vai chegar.
func (d Deps) callRemote(
	ctx context.Context,
	op string,
	call func(ctx context.Context) (*models.Appointment, error),
) (ap *models.Appointment, late <-chan remoteResult, err error) {

	rctx := ctx
	if d.RemoteTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, d.RemoteTimeout)
		defer cancel()
	}

	done := make(chan remoteResult, 1)

	started := time.Now()
	go func() {
		ap, err := call(rctx)
		done <- remoteResult{ap: ap, err: err}
	}()

	// o colaborador pode ignorar o contexto; o prazo vale mesmo assim
	select {
	case r := <-done:
		d.Metrics.ObserveRemoteLatency(op, time.Since(started).Seconds())
		return r.ap, nil, r.err
	case <-rctx.Done():
		d.Metrics.ObserveRemoteLatency(op, time.Since(started).Seconds())
		select {
		case r := <-done:
			return r.ap, nil, r.err
		default:
		}
		return nil, done, rctx.Err()
	}
}

func (d Deps) fail(ctx context.Context, op string, operatorID uint, message string, err error) error {
	outcome := "remote_failure"
	if code, ok := httperr.BusinessCode(err); ok {
		outcome = code
		message = httperr.Message(code)
	} else {
		d.Logger.Error("scheduling operation failed",
			"op", op,
			"operator_id", operatorID,
			"error", err,
		)
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
	}

	d.Metrics.ObserveOperation(op, outcome)
	d.Notifier.Notify(ctx, operatorID, notify.KindError, message)
	return err
}

func (d Deps) succeed(ctx context.Context, op string, operatorID uint, message string) {
	d.Metrics.ObserveOperation(op, "success")
	d.Notifier.Notify(ctx, operatorID, notify.KindSuccess, message)
}
