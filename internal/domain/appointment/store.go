package appointment

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Mutation is a pure function from the current list to the desired list.
// It receives a private copy and may modify it in place.
type Mutation func([]models.Appointment) []models.Appointment

// UndoToken guarda o estado anterior de uma mutação otimista.
type UndoToken struct {
	ID uuid.UUID

	before []models.Appointment
	after  []models.Appointment

	// registros alterados ou removidos, com a posição original
	touched []touchedEntry
	// ids que a mutação inseriu
	added []uint

	resolved atomic.Bool
}

type touchedEntry struct {
	index int
	ap    models.Appointment
}

// Store is the in-memory appointment list of one operator.
type Store struct {
	mu    sync.RWMutex
	items []models.Appointment
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll troca a lista inteira pelo estado vindo do servidor.
func (s *Store) ReplaceAll(list []models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = clone(list)
}

func (s *Store) Snapshot() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Get(id uint) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return models.Appointment{}, false
}

// Append adds a server-confirmed appointment.
func (s *Store) Append(ap models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, ap.ID); i >= 0 {
		s.items[i] = ap
		return
	}
	s.items = append(s.items, ap)
}

// Refresh substitui um registro já presente pela versão do servidor.
func (s *Store) Refresh(ap models.Appointment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, ap.ID); i >= 0 {
		s.items[i] = ap
		return true
	}
	return false
}

// Remove tira um registro da lista sem gerar token.
func (s *Store) Remove(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

// ApplyOptimistic aplica a mutação imediatamente e devolve o token para
// desfazê-la.
func (s *Store) ApplyOptimistic(mutate Mutation) *UndoToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate)
}

// ApplyChecked roda check e mutate sob o mesmo lock. Se check falhar nada
// é aplicado e nenhum token é criado.
func (s *Store) ApplyChecked(check func([]models.Appointment) error, mutate Mutation) (*UndoToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if check != nil {
		if err := check(clone(s.items)); err != nil {
			return nil, err
		}
	}
	return s.apply(mutate), nil
}

func (s *Store) apply(mutate Mutation) *UndoToken {
	before := clone(s.items)
	after := mutate(clone(s.items))

	tok := &UndoToken{
		ID:     uuid.New(),
		before: before,
		after:  clone(after),
	}

	next := make(map[uint]models.Appointment, len(after))
	for _, ap := range after {
		next[ap.ID] = ap
	}
	prev := make(map[uint]struct{}, len(before))
	for i, ap := range before {
		prev[ap.ID] = struct{}{}
		if cur, ok := next[ap.ID]; !ok || !cur.Same(ap) {
			tok.touched = append(tok.touched, touchedEntry{index: i, ap: ap})
		}
	}
	for _, ap := range after {
		if _, ok := prev[ap.ID]; !ok {
			tok.added = append(tok.added, ap.ID)
		}
	}

	s.items = clone(after)
	return tok
}

// Commit torna a mutação definitiva.
func (s *Store) Commit(tok *UndoToken) {
	if tok == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tok.resolve()
}

// Rollback restaura o estado anterior à mutação. Sem mutações intercaladas,
// a lista volta a ser exatamente a anterior; caso contrário só os registros
// tocados pela mutação são revertidos. Chamadas repetidas não têm efeito.
func (s *Store) Rollback(tok *UndoToken) {
	if tok == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.resolved.Load() {
		return
	}

	if sameList(s.items, tok.after) {
		s.items = clone(tok.before)
		tok.resolve()
		return
	}

	for _, id := range tok.added {
		if i := indexOf(s.items, id); i >= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
	}

	touched := append([]touchedEntry(nil), tok.touched...)
	sort.Slice(touched, func(i, j int) bool { return touched[i].index < touched[j].index })
	for _, t := range touched {
		if i := indexOf(s.items, t.ap.ID); i >= 0 {
			s.items[i] = t.ap
			continue
		}
		at := t.index
		if at > len(s.items) {
			at = len(s.items)
		}
		s.items = append(s.items, models.Appointment{})
		copy(s.items[at+1:], s.items[at:])
		s.items[at] = t.ap
	}

	tok.resolve()
}

// Resolved reports whether the token was committed or rolled back.
func (t *UndoToken) Resolved() bool {
	return t.resolved.Load()
}

func (t *UndoToken) resolve() {
	t.resolved.Store(true)
	t.before = nil
	t.after = nil
	t.touched = nil
	t.added = nil
}

func clone(list []models.Appointment) []models.Appointment {
	if list == nil {
		return []models.Appointment{}
	}
	out := make([]models.Appointment, len(list))
	copy(out, list)
	return out
}

func indexOf(list []models.Appointment, id uint) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func sameList(a, b []models.Appointment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Same(b[i]) {
			return false
		}
	}
	return true
}
