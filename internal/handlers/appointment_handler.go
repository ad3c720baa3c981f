package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	reschedule *ucAppointment.RescheduleByDrag
	resize     *ucAppointment.ResizeByHandle
	status     *ucAppointment.TransitionStatus
	remove     *ucAppointment.DeleteAppointment
	check      *ucAppointment.CheckConflict
	load       *ucAppointment.LoadAppointments
	list       *ucAppointment.ListAppointments
	payments   *ucAppointment.ListPayments

	loc *time.Location
}

func NewAppointmentHandler(deps ucAppointment.Deps) *AppointmentHandler {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentHandler{
		create:     ucAppointment.NewCreateAppointment(deps),
		reschedule: ucAppointment.NewRescheduleByDrag(deps),
		resize:     ucAppointment.NewResizeByHandle(deps),
		status:     ucAppointment.NewTransitionStatus(deps),
		remove:     ucAppointment.NewDeleteAppointment(deps),
		check:      ucAppointment.NewCheckConflict(deps),
		load:       ucAppointment.NewLoadAppointments(deps),
		list:       ucAppointment.NewListAppointments(deps),
		payments:   ucAppointment.NewListPayments(deps),
		loc:        loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Title           string  `json:"title"`
	Start           string  `json:"start" binding:"required"`
	End             string  `json:"end" binding:"required"`
	StaffResourceID uint    `json:"staff_resource_id" binding:"required"`
	ClientName      string  `json:"client_name"`
	ServiceName     string  `json:"service_name"`
	Price           float64 `json:"price" binding:"gte=0"`
	Status          string  `json:"status"`
}

type MoveRequest struct {
	Start string `json:"start" binding:"required"`
}

type ResizeRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ConflictCheckRequest struct {
	StaffResourceID uint   `json:"staff_resource_id" binding:"required"`
	Start           string `json:"start" binding:"required"`
	End             string `json:"end" binding:"required"`
	ExcludeID       *uint  `json:"exclude_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, ok := h.interval(c, req.Start, req.End)
	if !ok {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), middleware.OperatorID(c), domain.Draft{
		Title:           req.Title,
		StartTime:       start,
		EndTime:         end,
		StaffResourceID: req.StaffResourceID,
		ClientName:      req.ClientName,
		ServiceName:     req.ServiceName,
		Price:           req.Price,
		Status:          req.Status,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// LIST / REFRESH
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filter, visible := parseFilter(c, h.loc)

	items, err := h.list.Execute(c.Request.Context(), middleware.OperatorID(c), ucAppointment.ListAppointmentsInput{
		Filter:       filter,
		VisibleStaff: visible,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Refresh(c *gin.Context) {
	n, err := h.load.Execute(c.Request.Context(), middleware.OperatorID(c))
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, gin.H{"total": n})
}

// ======================================================
// DRAG / RESIZE
// ======================================================

func (h *AppointmentHandler) Move(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseTimestamp(h.loc, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	out, err := h.reschedule.Execute(c.Request.Context(), middleware.OperatorID(c), id, start)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Resize(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, ok := h.interval(c, req.Start, req.End)
	if !ok {
		return
	}

	out, err := h.resize.Execute(c.Request.Context(), middleware.OperatorID(c), id, start, end)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATUS / DELETE
// ======================================================

func (h *AppointmentHandler) Status(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.status.Execute(c.Request.Context(), middleware.OperatorID(c), id, req.Status)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.OperatorID(c), id); err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// CONFLITO (CONSULTIVO)
// ======================================================

func (h *AppointmentHandler) Check(c *gin.Context) {
	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, ok := h.interval(c, req.Start, req.End)
	if !ok {
		return
	}

	res, err := h.check.Execute(c.Request.Context(), middleware.OperatorID(c), ucAppointment.ConflictCheckInput{
		StaffResourceID: req.StaffResourceID,
		Start:           start,
		End:             end,
		ExcludeID:       req.ExcludeID,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// PAGAMENTOS (SOMENTE LEITURA)
// ======================================================

func (h *AppointmentHandler) Payments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	payments, err := h.payments.Execute(c.Request.Context(), middleware.OperatorID(c), id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, payments)
}

func (h *AppointmentHandler) interval(c *gin.Context, startStr, endStr string) (time.Time, time.Time, bool) {
	start, err := parseTimestamp(h.loc, startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return time.Time{}, time.Time{}, false
	}
	end, err := parseTimestamp(h.loc, endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
