package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

type BusinessHoursHandler struct {
	get      *ucAppointment.GetBusinessHours
	save     *ucAppointment.SaveBusinessHours
	envelope *ucAppointment.GetCalendarEnvelope
}

func NewBusinessHoursHandler(deps ucAppointment.Deps) *BusinessHoursHandler {
	return &BusinessHoursHandler{
		get:      ucAppointment.NewGetBusinessHours(deps),
		save:     ucAppointment.NewSaveBusinessHours(deps),
		envelope: ucAppointment.NewGetCalendarEnvelope(deps),
	}
}

type BusinessDayConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	rules, err := h.get.Execute(c.Request.Context(), middleware.OperatorID(c))
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, rules)
}

// Update substitui a semana inteira; não há alteração parcial de um dia.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rules := make([]models.BusinessDayRule, 0, len(req.Days))
	for _, d := range req.Days {
		rules = append(rules, models.BusinessDayRule{
			DayOfWeek: d.DayOfWeek,
			IsOpen:    d.IsOpen,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
		})
	}

	saved, err := h.save.Execute(c.Request.Context(), middleware.OperatorID(c), rules)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, saved)
}

func (h *BusinessHoursHandler) Envelope(c *gin.Context) {
	mode, ok := domain.ParseViewMode(c.Query("view"))
	if !ok {
		httperr.BadRequest(c, "invalid_view", "Visualização inválida.")
		return
	}

	httpresp.OK(c, h.envelope.Execute(c.Request.Context(), middleware.OperatorID(c), mode))
}
