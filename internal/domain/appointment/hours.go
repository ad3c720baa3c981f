package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

const (
	defaultOpenTime  = "09:00"
	defaultCloseTime = "17:00"
)

// DefaultBusinessHours retorna o expediente padrão: seg–sex 09:00–17:00,
// fim de semana fechado.
func DefaultBusinessHours(operatorID uint) []models.BusinessDayRule {
	rules := make([]models.BusinessDayRule, 0, 7)
	for day := 0; day < 7; day++ {
		weekday := time.Weekday(day)
		rules = append(rules, models.BusinessDayRule{
			OperatorID: operatorID,
			DayOfWeek:  day,
			IsOpen:     weekday != time.Saturday && weekday != time.Sunday,
			OpenTime:   defaultOpenTime,
			CloseTime:  defaultCloseTime,
		})
	}
	return rules
}

// ValidateBusinessHours exige o conjunto completo: uma regra por dia.
func ValidateBusinessHours(rules []models.BusinessDayRule) error {
	invalid := httperr.ErrBusiness(httperr.CodeInvalidBusinessHours)

	if len(rules) != 7 {
		return invalid
	}

	seen := make(map[int]bool, 7)
	for _, r := range rules {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 || seen[r.DayOfWeek] {
			return invalid
		}
		seen[r.DayOfWeek] = true

		if !r.IsOpen {
			continue
		}

		open, ok1 := parseClock(r.OpenTime)
		closeAt, ok2 := parseClock(r.CloseTime)
		if !ok1 || !ok2 || open >= closeAt {
			return invalid
		}
	}

	return nil
}

// SortRules orders a rule set by day of week, Sunday first.
func SortRules(rules []models.BusinessDayRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].DayOfWeek < rules[j].DayOfWeek
	})
}

func RuleFor(rules []models.BusinessDayRule, weekday time.Weekday) (models.BusinessDayRule, bool) {
	for _, r := range rules {
		if r.DayOfWeek == int(weekday) {
			return r, true
		}
	}
	return models.BusinessDayRule{}, false
}

// WithinBusinessHours valida se o intervalo cabe no expediente do dia.
// É consultivo: o agendamento fora do horário continua permitido.
func WithinBusinessHours(
	rules []models.BusinessDayRule,
	start time.Time,
	end time.Time,
	loc *time.Location,
) bool {

	if len(rules) == 0 {
		rules = DefaultBusinessHours(0)
	}
	if loc == nil {
		loc = time.UTC
	}

	start = start.In(loc)
	end = end.In(loc)

	wh, ok := RuleFor(rules, start.Weekday())
	if !ok || !wh.IsOpen {
		return false
	}

	open, ok1 := parseClock(wh.OpenTime)
	closeAt, ok2 := parseClock(wh.CloseTime)
	if !ok1 || !ok2 || open >= closeAt {
		return false
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	workStart := day.Add(open)
	workEnd := day.Add(closeAt)

	return !start.Before(workStart) && !end.After(workEnd)
}

// parseClock converte "15:04" ou "15:04:05" em deslocamento desde a meia-noite.
func parseClock(hm string) (time.Duration, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, hm); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

func formatClock(d time.Duration) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04:05")
}
