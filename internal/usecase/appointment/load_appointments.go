package appointment

import (
	"context"
)

// LoadAppointments recarrega a lista inteira a partir do servidor.
type LoadAppointments struct {
	deps Deps
}

func NewLoadAppointments(deps Deps) *LoadAppointments {
	return &LoadAppointments{deps: deps.withDefaults()}
}

func (uc *LoadAppointments) Execute(ctx context.Context, operatorID uint) (int, error) {
	ws, err := uc.deps.Workspaces.Reload(ctx, operatorID)
	if err != nil {
		uc.deps.Logger.Error("reload appointments failed",
			"operator_id", operatorID,
			"error", err,
		)
		return 0, err
	}
	return ws.Store.Len(), nil
}
