package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

const keyPrefix = "scheduler:business_hours:"

// BusinessHours é um cache read-through do expediente em Redis.
// Falhas do Redis nunca impedem a leitura do repositório de origem.
type BusinessHours struct {
	next   domain.BusinessHoursRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewBusinessHours(
	next domain.BusinessHoursRepository,
	rdb *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *BusinessHours {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BusinessHours{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *BusinessHours) GetBusinessHours(ctx context.Context, operatorID uint) ([]models.BusinessDayRule, error) {
	key := cacheKey(operatorID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rules []models.BusinessDayRule
		if jerr := json.Unmarshal(raw, &rules); jerr == nil {
			return rules, nil
		}
		c.logger.Warn("discarding corrupt business hours cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("business hours cache read failed", "key", key, "error", err)
	}

	rules, err := c.next.GetBusinessHours(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	// conjunto vazio não é cacheado: o primeiro acesso ainda precisa semear
	if len(rules) > 0 {
		if b, jerr := json.Marshal(rules); jerr == nil {
			if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
				c.logger.Warn("business hours cache write failed", "key", key, "error", serr)
			}
		}
	}

	return rules, nil
}

func (c *BusinessHours) SaveBusinessHours(ctx context.Context, operatorID uint, rules []models.BusinessDayRule) error {
	if err := c.next.SaveBusinessHours(ctx, operatorID, rules); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, cacheKey(operatorID)).Err(); err != nil {
		c.logger.Warn("business hours cache invalidation failed", "operator_id", operatorID, "error", err)
	}
	return nil
}

func cacheKey(operatorID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, operatorID)
}

// Compile-time check
var _ domain.BusinessHoursRepository = (*BusinessHours)(nil)
