package appointment

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	Filter domain.FilterState
	// VisibleStaff é o seletor de colunas; nil mostra todos.
	VisibleStaff []uint
}

type ListAppointments struct {
	deps Deps
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{deps: deps.withDefaults()}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	operatorID uint,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	ws, err := uc.deps.Workspaces.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	list := domain.Filter(ws.Store.Snapshot(), in.Filter, in.VisibleStaff)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.Before(list[j].StartTime)
	})

	staff := map[uint]models.StaffResource{}
	resources, err := uc.deps.Repo.ListStaff(ctx, operatorID)
	if err != nil {
		// sem a lista de profissionais a agenda continua visível
		uc.deps.Logger.Warn("list staff failed",
			"operator_id", operatorID,
			"error", err,
		)
	}
	for _, s := range resources {
		staff[s.ID] = s
	}

	out := make([]dto.AppointmentListDTO, 0, len(list))
	for _, ap := range list {
		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			Title:           ap.Title,
			StartTime:       ap.StartTime,
			EndTime:         ap.EndTime,
			StaffResourceID: ap.StaffResourceID,
			ClientName:      ap.ClientName,
			ServiceName:     ap.ServiceName,
			Price:           ap.Price,
			Status:          ap.Status,
			PaymentStatus:   ap.PaymentStatus,
			TotalPaid:       ap.TotalPaid,
		}

		if s, ok := staff[ap.StaffResourceID]; ok {
			item.StaffName = s.DisplayName
			item.StaffColor = s.ColorTag
		} else {
			item.StaffName = dto.StaffPlaceholder
			item.StaffMissing = true
		}

		out = append(out, item)
	}

	return out, nil
}
