package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
)

// StaffHandler expõe as colunas do calendário e o feed de notificações.
type StaffHandler struct {
	repo domain.Repository
	feed *notify.Feed
}

func NewStaffHandler(repo domain.Repository, feed *notify.Feed) *StaffHandler {
	return &StaffHandler{repo: repo, feed: feed}
}

func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.repo.ListStaff(c.Request.Context(), middleware.OperatorID(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}
	httpresp.List(c, staff)
}

// Notifications devolve e limpa as notificações pendentes.
func (h *StaffHandler) Notifications(c *gin.Context) {
	if h.feed == nil {
		httpresp.List[notify.Message](c, nil)
		return
	}
	httpresp.List(c, h.feed.Drain(middleware.OperatorID(c)))
}
