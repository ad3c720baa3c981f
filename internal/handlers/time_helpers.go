package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

// parseTimestamp aceita RFC3339 ou "2006-01-02 15:04" no fuso do operador.
func parseTimestamp(loc *time.Location, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, loc)
}

// parseDayBound aceita uma data "2006-01-02" ou um timestamp completo.
func parseDayBound(loc *time.Location, s string) (time.Time, bool) {
	if t, err := timezone.ParseDateIn(loc, s); err == nil {
		return t, true
	}
	if t, err := parseTimestamp(loc, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// queryList junta valores repetidos e separados por vírgula.
func queryList(c *gin.Context, key string) ([]string, bool) {
	raw, present := c.GetQueryArray(key)
	if !present {
		return nil, false
	}
	out := []string{}
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out, true
}

func queryIDs(c *gin.Context, key string) ([]uint, bool) {
	values, present := queryList(c, key)
	if !present {
		return nil, false
	}
	ids := []uint{}
	for _, v := range values {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	// nenhum id válido conta como parâmetro ausente
	if len(values) > 0 && len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

func queryFloat(c *gin.Context, key string) *float64 {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseFilter monta o filtro avançado. Campos malformados são ignorados.
func parseFilter(c *gin.Context, loc *time.Location) (domain.FilterState, []uint) {
	var f domain.FilterState

	if statuses, ok := queryList(c, "status"); ok {
		for _, s := range statuses {
			if st, err := domain.ParseStatus(s); err == nil {
				f.Statuses = append(f.Statuses, st)
			}
		}
	}

	if payments, ok := queryList(c, "payment_status"); ok {
		for _, s := range payments {
			if ps, ok := domain.ParsePaymentStatus(s); ok {
				f.PaymentStatuses = append(f.PaymentStatuses, ps)
			}
		}
	}

	if staff, ok := queryIDs(c, "staff"); ok {
		f.StaffIDs = staff
	}

	if from := c.Query("from"); from != "" {
		if t, ok := parseDayBound(loc, from); ok {
			f.DateRange.Start = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, ok := parseDayBound(loc, to); ok {
			// data sem hora inclui o dia inteiro
			if _, err := timezone.ParseDateIn(loc, to); err == nil {
				t = t.AddDate(0, 0, 1)
			}
			f.DateRange.End = &t
		}
	}

	f.PriceRange.Min = queryFloat(c, "min_price")
	f.PriceRange.Max = queryFloat(c, "max_price")

	visible, _ := queryIDs(c, "visible_staff")
	return f, visible
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
