package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ViewMode string

const (
	ViewDay      ViewMode = "day"
	ViewWorkWeek ViewMode = "work_week"
	ViewWeek     ViewMode = "week"
	ViewMonth    ViewMode = "month"
)

const (
	DefaultSlotFloor   = "08:00:00"
	DefaultSlotCeiling = "20:00:00"
)

func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewDay, ViewWorkWeek, ViewWeek, ViewMonth:
		return ViewMode(s), true
	case "":
		return ViewWeek, true
	}
	return "", false
}

// Envelope delimits the bookable grid of a calendar view.
type Envelope struct {
	SlotFloor   string `json:"slot_floor"`
	SlotCeiling string `json:"slot_ceiling"`
	HiddenDays  []int  `json:"hidden_days"`
}

// Availability deriva os limites da grade a partir do expediente.
// Função pura: regras ausentes ou inválidas caem nos valores padrão.
func Availability(rules []models.BusinessDayRule, mode ViewMode) Envelope {
	env := Envelope{
		SlotFloor:   DefaultSlotFloor,
		SlotCeiling: DefaultSlotCeiling,
		HiddenDays:  []int{},
	}

	var (
		floor, ceiling time.Duration
		found          bool
	)

	for _, r := range rules {
		if !r.IsOpen {
			continue
		}
		open, ok1 := parseClock(r.OpenTime)
		closeAt, ok2 := parseClock(r.CloseTime)
		if !ok1 || !ok2 || open >= closeAt {
			continue
		}

		if !found || open < floor {
			floor = open
		}
		if !found || closeAt > ceiling {
			ceiling = closeAt
		}
		found = true
	}

	if found {
		env.SlotFloor = formatClock(floor)
		env.SlotCeiling = formatClock(ceiling)
	}

	// semana útil: sábado e domingo sempre ocultos, independente do expediente
	if mode == ViewWorkWeek {
		env.HiddenDays = []int{int(time.Sunday), int(time.Saturday)}
		return env
	}

	hidden := make(map[int]bool)
	for _, r := range rules {
		if !r.IsOpen && r.DayOfWeek >= 0 && r.DayOfWeek <= 6 {
			hidden[r.DayOfWeek] = true
		}
	}
	for day := range hidden {
		env.HiddenDays = append(env.HiddenDays, day)
	}
	sort.Ints(env.HiddenDays)

	return env
}
