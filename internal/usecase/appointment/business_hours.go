package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
)

// ======================================================
// GET (com semente no primeiro acesso)
// ======================================================

type GetBusinessHours struct {
	deps Deps
}

func NewGetBusinessHours(deps Deps) *GetBusinessHours {
	return &GetBusinessHours{deps: deps.withDefaults()}
}

func (uc *GetBusinessHours) Execute(ctx context.Context, operatorID uint) ([]models.BusinessDayRule, error) {
	rules, err := uc.deps.Hours.GetBusinessHours(ctx, operatorID)
	if err != nil {
		return nil, httperr.Remote("get_business_hours", err)
	}

	if len(rules) > 0 {
		domain.SortRules(rules)
		return rules, nil
	}

	// primeiro acesso: grava o expediente padrão
	rules = domain.DefaultBusinessHours(operatorID)
	if err := uc.deps.Hours.SaveBusinessHours(ctx, operatorID, rules); err != nil {
		// o calendário funciona sem a semente (valores padrão)
		uc.deps.Logger.Warn("seed business hours failed",
			"operator_id", operatorID,
			"error", err,
		)
	}
	return rules, nil
}

// ======================================================
// SAVE (substituição completa)
// ======================================================

type SaveBusinessHours struct {
	deps Deps
}

func NewSaveBusinessHours(deps Deps) *SaveBusinessHours {
	return &SaveBusinessHours{deps: deps.withDefaults()}
}

func (uc *SaveBusinessHours) Execute(
	ctx context.Context,
	operatorID uint,
	rules []models.BusinessDayRule,
) ([]models.BusinessDayRule, error) {

	const op = "save_business_hours"
	d := uc.deps

	if err := domain.ValidateBusinessHours(rules); err != nil {
		return nil, d.fail(ctx, op, operatorID, "", err)
	}

	out := make([]models.BusinessDayRule, len(rules))
	for i, r := range rules {
		out[i] = models.BusinessDayRule{
			OperatorID: operatorID,
			DayOfWeek:  r.DayOfWeek,
			IsOpen:     r.IsOpen,
			OpenTime:   r.OpenTime,
			CloseTime:  r.CloseTime,
		}
	}
	domain.SortRules(out)

	if err := d.Hours.SaveBusinessHours(ctx, operatorID, out); err != nil {
		return nil, d.fail(ctx, op, operatorID, "Não foi possível salvar o horário de funcionamento.", httperr.Remote(op, err))
	}

	d.Metrics.ObserveOperation(op, "success")
	d.Notifier.Notify(ctx, operatorID, notify.KindSuccess, "Horário de funcionamento salvo.")
	return out, nil
}

// ======================================================
// ENVELOPE DA GRADE
// ======================================================

type GetCalendarEnvelope struct {
	hours *GetBusinessHours
}

func NewGetCalendarEnvelope(deps Deps) *GetCalendarEnvelope {
	return &GetCalendarEnvelope{hours: NewGetBusinessHours(deps)}
}

// Execute nunca falha por falta de expediente: cai nos valores padrão.
func (uc *GetCalendarEnvelope) Execute(
	ctx context.Context,
	operatorID uint,
	mode domain.ViewMode,
) domain.Envelope {

	rules, err := uc.hours.Execute(ctx, operatorID)
	if err != nil {
		uc.hours.deps.Logger.Warn("business hours unavailable, using defaults",
			"operator_id", operatorID,
			"error", err,
		)
		rules = nil
	}
	return domain.Availability(rules, mode)
}
