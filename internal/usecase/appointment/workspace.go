package appointment

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// Workspace é o estado em memória da agenda de um operador.
type Workspace struct {
	Store *domain.Store
	Queue *domain.Queue

	mu     sync.Mutex
	loaded bool
}

// Workspaces keeps one workspace per signed-in operator.
type Workspaces struct {
	repo domain.Repository

	mu         sync.Mutex
	byOperator map[uint]*Workspace
}

func NewWorkspaces(repo domain.Repository) *Workspaces {
	return &Workspaces{
		repo:       repo,
		byOperator: make(map[uint]*Workspace),
	}
}

// Get devolve o workspace do operador, carregando do servidor no primeiro uso.
func (w *Workspaces) Get(ctx context.Context, operatorID uint) (*Workspace, error) {
	ws := w.workspace(operatorID)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.loaded {
		return ws, nil
	}
	if err := w.load(ctx, operatorID, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Reload força a recarga completa (ex.: pagamento registrado em outra tela).
func (w *Workspaces) Reload(ctx context.Context, operatorID uint) (*Workspace, error) {
	ws := w.workspace(operatorID)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if err := w.load(ctx, operatorID, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (w *Workspaces) workspace(operatorID uint) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws, ok := w.byOperator[operatorID]
	if !ok {
		ws = &Workspace{
			Store: domain.NewStore(),
			Queue: domain.NewQueue(),
		}
		w.byOperator[operatorID] = ws
	}
	return ws
}

func (w *Workspaces) load(ctx context.Context, operatorID uint, ws *Workspace) error {
	list, err := w.repo.ListAppointments(ctx, operatorID)
	if err != nil {
		return httperr.Remote("list_appointments", err)
	}
	ws.Store.ReplaceAll(list)
	ws.loaded = true
	return nil
}
