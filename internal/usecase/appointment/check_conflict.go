package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

type ConflictCheckInput struct {
	StaffResourceID uint
	Start           time.Time
	End             time.Time
	// ExcludeID ignora o próprio agendamento ao reagendar.
	ExcludeID *uint
}

type ConflictCheckResult struct {
	Conflict             bool              `json:"conflict"`
	Conflicts            []domain.Conflict `json:"conflicts"`
	OutsideBusinessHours bool              `json:"outside_business_hours"`
}

// CheckConflict é a guarda consultiva que a UI chama quando quiser avisar
// ou bloquear; as operações de escrita não dependem dela.
type CheckConflict struct {
	deps Deps
}

func NewCheckConflict(deps Deps) *CheckConflict {
	return &CheckConflict{deps: deps.withDefaults()}
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	operatorID uint,
	in ConflictCheckInput,
) (*ConflictCheckResult, error) {

	if err := domain.ValidateInterval(in.Start, in.End); err != nil {
		return nil, err
	}

	ws, err := uc.deps.Workspaces.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	conflicts := domain.Conflicts(in.StaffResourceID, in.Start, in.End, ws.Store.Snapshot(), in.ExcludeID)
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}

	res := &ConflictCheckResult{
		Conflict:  len(conflicts) > 0,
		Conflicts: conflicts,
	}

	if uc.deps.Hours != nil {
		rules, err := uc.deps.Hours.GetBusinessHours(ctx, operatorID)
		if err != nil {
			uc.deps.Logger.Warn("business hours unavailable for advisory check",
				"operator_id", operatorID,
				"error", err,
			)
		} else {
			res.OutsideBusinessHours = !domain.WithinBusinessHours(rules, in.Start, in.End, uc.deps.Location)
		}
	}

	return res, nil
}
