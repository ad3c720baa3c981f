package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/handlers"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/appointment-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

// RegisterRoutes monta a API e devolve a função que libera os recursos
// de fundo (fila de auditoria e conexão Redis).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORSMiddleware(cfg.CORSOrigins...),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	var hoursRepo domain.BusinessHoursRepository = infraRepo.NewBusinessHoursGormRepository(db)
	rdb := newRedis(cfg, logger)
	if rdb != nil {
		hoursRepo = cache.NewBusinessHours(hoursRepo, rdb, cfg.HoursCacheTTL, logger)
	}

	auditDispatcher := audit.NewDispatcher(audit.NewGormSink(db), logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	schedulingMetrics := metrics.NewSchedulingMetrics(reg)

	feed := notify.NewFeed(100)
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	deps := ucAppointment.Deps{
		Repo:           appointmentRepo,
		Hours:          hoursRepo,
		Workspaces:     ucAppointment.NewWorkspaces(appointmentRepo),
		Notifier:       notify.Multi{notify.NewLog(logger), feed},
		Audit:          auditDispatcher,
		Metrics:        schedulingMetrics,
		Logger:         logger,
		Location:       loc,
		RemoteTimeout:  cfg.RemoteTimeout,
		ConflictPolicy: cfg.ConflictPolicy,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(deps)
	businessHoursHandler := handlers.NewBusinessHoursHandler(deps)
	staffHandler := handlers.NewStaffHandler(appointmentRepo, feed)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// ======================================================
	// 🔐 API PRIVADA
	// ======================================================
	secured := r.Group("/api/me")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/staff", staffHandler.List)
		secured.GET("/notifications", staffHandler.Notifications)

		secured.GET("/business-hours", businessHoursHandler.Get)
		secured.PUT("/business-hours", businessHoursHandler.Update)
		secured.GET("/calendar/envelope", businessHoursHandler.Envelope)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.GET("/appointments", appointmentHandler.List)
		secured.POST("/appointments", appointmentHandler.Create)
		secured.POST("/appointments/refresh", appointmentHandler.Refresh)
		secured.POST("/appointments/check", appointmentHandler.Check)
		secured.PATCH("/appointments/:id/move", appointmentHandler.Move)
		secured.PATCH("/appointments/:id/resize", appointmentHandler.Resize)
		secured.PATCH("/appointments/:id/status", appointmentHandler.Status)
		secured.DELETE("/appointments/:id", appointmentHandler.Delete)
		secured.GET("/appointments/:id/payments", appointmentHandler.Payments)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}

	return func() {
		auditDispatcher.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
	}
}

// newRedis devolve nil quando o Redis não está configurado ou não responde;
// nesse caso o expediente é lido direto do banco.
func newRedis(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, business hours cache disabled", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
