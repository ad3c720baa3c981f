package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// segunda-feira, 10/03/2025
var base = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// ======================================================
// FAKES
// ======================================================

type memRepo struct {
	mu        sync.Mutex
	items     map[uint]models.Appointment
	staff     []models.StaffResource
	nextID    uint
	updateErr error
}

func (r *memRepo) ListAppointments(_ context.Context, _ uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for id := uint(1); id <= 200; id++ {
		if ap, ok := r.items[id]; ok {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) CreateAppointment(_ context.Context, draft *models.Appointment) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ap := *draft
	ap.ID = r.nextID
	r.items[ap.ID] = ap
	return &ap, nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, _ uint, id uint, patch domain.Patch) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	ap := r.items[id]
	ap.StartTime, ap.EndTime = *patch.StartTime, *patch.EndTime
	r.items[id] = ap
	return &ap, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, _ uint, id uint, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap := r.items[id]
	ap.Status = string(status)
	r.items[id] = ap
	return nil
}

func (r *memRepo) DeleteAppointment(_ context.Context, _ uint, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memRepo) ListStaff(context.Context, uint) ([]models.StaffResource, error) {
	return r.staff, nil
}

func (r *memRepo) ListPayments(_ context.Context, _ uint, id uint) ([]models.PaymentRecord, error) {
	return []models.PaymentRecord{{ID: 1, AppointmentID: id, Amount: 50, Method: "cash"}}, nil
}

type memHours struct {
	mu    sync.Mutex
	rules []models.BusinessDayRule
}

func (h *memHours) GetBusinessHours(context.Context, uint) ([]models.BusinessDayRule, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.BusinessDayRule(nil), h.rules...), nil
}

func (h *memHours) SaveBusinessHours(_ context.Context, _ uint, rules []models.BusinessDayRule) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rules = append([]models.BusinessDayRule(nil), rules...)
	return nil
}

// ======================================================
// ROUTER
// ======================================================

type testAPI struct {
	router *gin.Engine
	repo   *memRepo
	feed   *notify.Feed
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	repo := &memRepo{
		items: map[uint]models.Appointment{
			1: {ID: 1, OperatorID: 1, StaffResourceID: 1, StartTime: clock(10, 0), EndTime: clock(10, 30), Status: "confirmed", PaymentStatus: "pending", Price: 80},
			2: {ID: 2, OperatorID: 1, StaffResourceID: 2, StartTime: clock(13, 0), EndTime: clock(14, 0), Status: "completed", PaymentStatus: "paid", Price: 120},
		},
		staff:  []models.StaffResource{{ID: 1, DisplayName: "Ana"}},
		nextID: 10,
	}
	feed := notify.NewFeed(10)

	deps := ucAppointment.Deps{
		Repo:       repo,
		Hours:      &memHours{rules: domain.DefaultBusinessHours(1)},
		Workspaces: ucAppointment.NewWorkspaces(repo),
		Notifier:   feed,
		Logger:     logging.Discard(),
		Location:   time.UTC,
	}

	appointments := NewAppointmentHandler(deps)
	hours := NewBusinessHoursHandler(deps)
	staff := NewStaffHandler(repo, feed)

	r := gin.New()
	me := r.Group("/api/me", func(c *gin.Context) {
		c.Set(middleware.ContextOperatorID, uint(1))
		c.Next()
	})
	me.GET("/staff", staff.List)
	me.GET("/notifications", staff.Notifications)
	me.GET("/business-hours", hours.Get)
	me.PUT("/business-hours", hours.Update)
	me.GET("/calendar/envelope", hours.Envelope)
	me.GET("/appointments", appointments.List)
	me.POST("/appointments", appointments.Create)
	me.POST("/appointments/refresh", appointments.Refresh)
	me.POST("/appointments/check", appointments.Check)
	me.PATCH("/appointments/:id/move", appointments.Move)
	me.PATCH("/appointments/:id/resize", appointments.Resize)
	me.PATCH("/appointments/:id/status", appointments.Status)
	me.DELETE("/appointments/:id", appointments.Delete)
	me.GET("/appointments/:id/payments", appointments.Payments)

	return &testAPI{router: r, repo: repo, feed: feed}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Code string `json:"error_code"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// ======================================================
// TESTS
// ======================================================

func TestMove(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPatch, "/api/me/appointments/1/move", gin.H{"start": "2025-03-10T10:15:00Z"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[ucAppointment.Outcome](t, rec)
	assert.True(t, out.Appointment.EndTime.Equal(clock(10, 45)))

	notes := api.feed.Drain(1)
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindSuccess, notes[0].Kind)
}

func TestMove_Errors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPatch, "/api/me/appointments/99/move", gin.H{"start": "2025-03-10T10:15:00Z"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "appointment_not_found", decode[errorBody](t, rec).Code)

	rec = api.do(t, http.MethodPatch, "/api/me/appointments/abc/move", gin.H{"start": "2025-03-10T10:15:00Z"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/me/appointments/1/move", gin.H{"start": "amanhã"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.repo.updateErr = errors.New("boom")
	rec = api.do(t, http.MethodPatch, "/api/me/appointments/1/move", gin.H{"start": "2025-03-10 11:00"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "remote_failure", decode[errorBody](t, rec).Code)
}

func TestResize_InvalidInterval(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPatch, "/api/me/appointments/1/resize", gin.H{
		"start": "2025-03-10T11:00:00Z",
		"end":   "2025-03-10T10:00:00Z",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_interval", decode[errorBody](t, rec).Code)
}

func TestCreateAndList(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/me/appointments", gin.H{
		"title":             "Avaliação",
		"start":             "2025-03-10T15:00:00Z",
		"end":               "2025-03-10T15:30:00Z",
		"staff_resource_id": 1,
		"price":             60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ucAppointment.Outcome](t, rec)
	assert.Equal(t, uint(11), created.Appointment.ID)

	rec = api.do(t, http.MethodGet, "/api/me/appointments?status=confirmed,pending&visible_staff=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	type listBody struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	list := decode[listBody](t, rec)
	require.Equal(t, 2, list.Total)
	assert.EqualValues(t, 1, list.Data[0]["id"])
	assert.EqualValues(t, 11, list.Data[1]["id"])
	assert.Equal(t, "Ana", list.Data[0]["staff_name"])
}

func TestCreate_RejectsNegativePrice(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/me/appointments", gin.H{
		"start":             "2025-03-10T15:00:00Z",
		"end":               "2025-03-10T15:30:00Z",
		"staff_resource_id": 1,
		"price":             -5,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_StaleStaffPlaceholder(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/me/appointments?staff=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"staff_missing":true`)
}

func TestStatusAndDelete(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPatch, "/api/me/appointments/1/status", gin.H{"status": "no-show"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-show", decode[ucAppointment.Outcome](t, rec).Appointment.Status)

	rec = api.do(t, http.MethodPatch, "/api/me/appointments/1/status", gin.H{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_status", decode[errorBody](t, rec).Code)

	rec = api.do(t, http.MethodDelete, "/api/me/appointments/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/me/appointments/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheck(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/me/appointments/check", gin.H{
		"staff_resource_id": 1,
		"start":             "2025-03-10T10:15:00Z",
		"end":               "2025-03-10T10:45:00Z",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[ucAppointment.ConflictCheckResult](t, rec)
	assert.True(t, res.Conflict)
	assert.False(t, res.OutsideBusinessHours)
}

func TestPaymentsAndRefresh(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/me/appointments/2/payments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = api.do(t, http.MethodPost, "/api/me/appointments/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":2}`, rec.Body.String())
}

func TestEnvelope(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/me/calendar/envelope?view=work_week", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slot_floor":"09:00:00","slot_ceiling":"17:00:00","hidden_days":[0,6]}`, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/me/calendar/envelope", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slot_floor":"09:00:00","slot_ceiling":"17:00:00","hidden_days":[0,6]}`, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/me/calendar/envelope?view=year", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBusinessHoursUpdate(t *testing.T) {
	api := newTestAPI(t)

	days := make([]gin.H, 0, 7)
	for d := 0; d < 7; d++ {
		days = append(days, gin.H{"day_of_week": d, "is_open": true, "open_time": "07:00", "close_time": "22:00"})
	}

	rec := api.do(t, http.MethodPut, "/api/me/business-hours", gin.H{"days": days})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/me/calendar/envelope?view=week", nil)
	assert.JSONEq(t, `{"slot_floor":"07:00:00","slot_ceiling":"22:00:00","hidden_days":[]}`, rec.Body.String())

	rec = api.do(t, http.MethodPut, "/api/me/business-hours", gin.H{"days": days[:3]})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_business_hours", decode[errorBody](t, rec).Code)
}

func TestStaffAndNotifications(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/me/staff", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display_name":"Ana"`)

	api.do(t, http.MethodDelete, "/api/me/appointments/99", nil)

	rec = api.do(t, http.MethodGet, "/api/me/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"error"`)

	rec = api.do(t, http.MethodGet, "/api/me/notifications", nil)
	assert.JSONEq(t, `{"data":[],"total":0}`, rec.Body.String())
}
