package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/config"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/handlers"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/telehealth-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/middleware"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
)

// Dependencies are the process-wide singletons built by the serve command.
// Redis is optional; without it bookings rely on the database guard alone.
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *zap.Logger
	Redis   *redis.Client
	Audit   *audit.Dispatcher
	Metrics *metrics.SchedulingMetrics
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	db, cfg, logger := deps.DB, deps.Config, deps.Logger

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	repo := infraRepo.NewSchedulingGormRepository(db)
	policy := cfg.Policy()

	var holder ucScheduling.SlotHolder
	if deps.Redis != nil {
		holder = lock.NewSlotHolder(deps.Redis, cfg.BookingHoldTTL)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	validateUC := ucScheduling.NewValidateAppointmentCreation(repo, policy, logger, deps.Metrics)

	slotsUC := ucScheduling.NewGetNextAvailableSlots(repo, policy, logger, deps.Metrics)
	checkSlotUC := ucScheduling.NewValidateSlotAvailability(repo, logger, deps.Metrics)
	suggestUC := ucScheduling.NewSuggestAlternativeAppointmentTimes(repo, policy, logger, deps.Metrics)
	createUC := ucScheduling.NewCreateAppointment(repo, validateUC, holder, deps.Audit, logger, deps.Metrics)
	cancelUC := ucScheduling.NewCancelAppointment(repo, deps.Audit, logger, deps.Metrics)

	listByDateUC := ucScheduling.NewListAppointmentsByDate(repo)
	listPatientUC := ucScheduling.NewListPatientAppointments(repo)

	getAvailabilityUC := ucScheduling.NewGetAvailability(repo)
	saveWeeklyUC := ucScheduling.NewSaveWeeklyAvailability(repo, deps.Audit, logger)
	saveExceptionsUC := ucScheduling.NewSaveAvailabilityExceptions(repo, deps.Audit, logger)
	updateTimezoneUC := ucScheduling.NewUpdateProviderTimezone(repo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	meHandler := handlers.NewMeHandler(repo, updateTimezoneUC, logger)
	slotsHandler := handlers.NewSlotsHandler(slotsUC, checkSlotUC, suggestUC, validateUC, createUC, logger)
	appointmentHandler := handlers.NewAppointmentHandler(listByDateUC, cancelUC, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, saveWeeklyUC, saveExceptionsUC, logger)
	patientHandler := handlers.NewPatientHandler(db, listPatientUC, logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(db), logger)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/providers/:id/slots", slotsHandler.Slots)
		api.GET("/providers/:id/slots/check", slotsHandler.CheckSlot)
		api.GET("/providers/:id/suggestions", slotsHandler.Suggestions)

		api.POST("/appointments/validate", slotsHandler.Validate)
		api.POST("/appointments", slotsHandler.CreateAppointment)

		api.POST("/patients", patientHandler.Create)
		api.GET("/patients/:id/appointments", patientHandler.Appointments)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PROVIDER (JWT)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)
			secured.PATCH("", meHandler.UpdateMe)

			secured.GET("/availability", availabilityHandler.Get)
			secured.PUT("/availability", availabilityHandler.UpdateWeekly)
			secured.GET("/availability/exceptions", availabilityHandler.GetExceptions)
			secured.PUT("/availability/exceptions", availabilityHandler.UpdateExceptions)

			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			secured.GET("/patients", patientHandler.List)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
