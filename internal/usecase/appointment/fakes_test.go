package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
)

var errNetwork = errors.New("network unreachable")

// segunda-feira
var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// ======================================================
// REPOSITORY
// ======================================================

type fakeRepo struct {
	mu     sync.Mutex
	items  map[uint]models.Appointment
	staff  []models.StaffResource
	nextID uint

	listErr   error
	createErr error
	updateErr error
	statusErr error
	deleteErr error
	staffErr  error

	// onUpdate roda antes de cada UpdateAppointment
	onUpdate func(ctx context.Context, id uint)

	calls map[string]int
}

func newFakeRepo(items ...models.Appointment) *fakeRepo {
	r := &fakeRepo{
		items:  make(map[uint]models.Appointment),
		nextID: 100,
		calls:  make(map[string]int),
	}
	for _, ap := range items {
		r.items[ap.ID] = ap
	}
	return r
}

func (r *fakeRepo) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *fakeRepo) hit(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[op]++
}

func (r *fakeRepo) ListAppointments(_ context.Context, _ uint) ([]models.Appointment, error) {
	r.hit("list")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Appointment, 0, len(r.items))
	for id := uint(0); id <= r.nextID; id++ {
		if ap, ok := r.items[id]; ok {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, draft *models.Appointment) (*models.Appointment, error) {
	r.hit("create")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	ap := *draft
	ap.ID = r.nextID
	r.items[ap.ID] = ap
	return &ap, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, _ uint, id uint, patch domain.Patch) (*models.Appointment, error) {
	r.hit("update")
	r.mu.Lock()
	hook := r.onUpdate
	r.mu.Unlock()
	if hook != nil {
		hook(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	ap, ok := r.items[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if patch.StartTime != nil {
		ap.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		ap.EndTime = *patch.EndTime
	}
	r.items[id] = ap
	return &ap, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, _ uint, id uint, status domain.Status) error {
	r.hit("status")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statusErr != nil {
		return r.statusErr
	}
	ap := r.items[id]
	ap.Status = string(status)
	r.items[id] = ap
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, _ uint, id uint) error {
	r.hit("delete")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) ListStaff(_ context.Context, _ uint) ([]models.StaffResource, error) {
	r.hit("staff")
	if r.staffErr != nil {
		return nil, r.staffErr
	}
	return r.staff, nil
}

func (r *fakeRepo) ListPayments(_ context.Context, _ uint, appointmentID uint) ([]models.PaymentRecord, error) {
	r.hit("payments")
	return []models.PaymentRecord{{ID: 1, AppointmentID: appointmentID, Amount: 40, Method: "pix"}}, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// BUSINESS HOURS
// ======================================================

type fakeHours struct {
	mu      sync.Mutex
	rules   []models.BusinessDayRule
	getErr  error
	saveErr error
	saves   int

	// wait roda antes de cada leitura, fora do lock
	wait func()
}

func (h *fakeHours) GetBusinessHours(_ context.Context, _ uint) ([]models.BusinessDayRule, error) {
	if h.wait != nil {
		h.wait()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.getErr != nil {
		return nil, h.getErr
	}
	return append([]models.BusinessDayRule(nil), h.rules...), nil
}

func (h *fakeHours) SaveBusinessHours(_ context.Context, _ uint, rules []models.BusinessDayRule) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
	if h.saveErr != nil {
		return h.saveErr
	}
	h.rules = append([]models.BusinessDayRule(nil), rules...)
	return nil
}

// ======================================================
// NOTIFIER / AUDIT
// ======================================================

type recorder struct {
	mu    sync.Mutex
	kinds []notify.Kind
	msgs  []string
}

func (r *recorder) Notify(_ context.Context, _ uint, kind notify.Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	r.msgs = append(r.msgs, message)
}

func (r *recorder) last() (notify.Kind, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.kinds) == 0 {
		return "", ""
	}
	return r.kinds[len(r.kinds)-1], r.msgs[len(r.msgs)-1]
}

type auditSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *auditSink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *auditSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

// ======================================================
// HARNESS
// ======================================================

type harness struct {
	repo     *fakeRepo
	hours    *fakeHours
	notes    *recorder
	sink     *auditSink
	dispatch *audit.Dispatcher
	deps     Deps
}

func newHarness(t *testing.T, items ...models.Appointment) *harness {
	t.Helper()

	h := &harness{
		repo:  newFakeRepo(items...),
		hours: &fakeHours{rules: domain.DefaultBusinessHours(1)},
		notes: &recorder{},
		sink:  &auditSink{},
	}
	h.dispatch = audit.NewDispatcher(h.sink, logging.Discard())
	t.Cleanup(h.dispatch.Close)

	h.deps = Deps{
		Repo:       h.repo,
		Hours:      h.hours,
		Workspaces: NewWorkspaces(h.repo),
		Notifier:   h.notes,
		Audit:      h.dispatch,
		Logger:     logging.Discard(),
		Location:   time.UTC,
	}
	return h
}

// auditActions fecha o dispatcher para garantir que a fila foi consumida.
func (h *harness) auditActions() []string {
	h.dispatch.Close()
	return h.sink.actions()
}

func booking(id, staff uint, start, end time.Time, status domain.Status) models.Appointment {
	return models.Appointment{
		ID:              id,
		OperatorID:      1,
		StaffResourceID: staff,
		StartTime:       start,
		EndTime:         end,
		Status:          string(status),
		PaymentStatus:   string(domain.PaymentPending),
	}
}

func (r *fakeRepo) stored(id uint) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}
