package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/R4F43R/barbapp/internal/audit"
	"github.com/R4F43R/barbapp/internal/booking"
	"github.com/R4F43R/barbapp/internal/config"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/events"
	"github.com/R4F43R/barbapp/internal/handlers"
	"github.com/R4F43R/barbapp/internal/infra/storage"
	"github.com/R4F43R/barbapp/internal/middleware"
	ucAppointment "github.com/R4F43R/barbapp/internal/usecase/appointment"
)

// Infra carries the process-wide collaborators built in main.
type Infra struct {
	Appointments domain.Repository
	Catalog      domain.Catalog
	Audit        *audit.Dispatcher
	Events       events.Publisher
	Images       storage.ImageResolver
	// DB is nil for the in-memory store.
	DB *gorm.DB
}

// RegisterRoutes wires use cases and handlers onto r. Background work (booking
// session expiry) stops with ctx.
func RegisterRoutes(ctx context.Context, r *gin.Engine, infra Infra, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	schedule := cfg.Schedule()

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		infra.Appointments,
		infra.Catalog,
		schedule,
		infra.Audit,
		infra.Events,
		log.Named("appointments"),
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		infra.Appointments,
		infra.Audit,
		infra.Events,
		log.Named("appointments"),
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(infra.Appointments)

	availabilityUC := ucAppointment.NewGetAvailability(
		infra.Appointments,
		infra.Catalog,
		schedule,
	)

	// ======================================================
	// 🗓️ BOOKING SESSIONS
	// ======================================================
	bookingBackend := booking.NewLocalBackend(createAppointmentUC, listAppointmentsUC)
	bookingLog := log.Named("booking")

	sessions := booking.NewRegistry(func() *booking.Flow {
		return booking.NewFlow(bookingBackend, schedule, bookingLog)
	}, cfg.SessionTTL, bookingLog)
	go sessions.Run(ctx, time.Minute)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler(infra.Catalog, infra.Images, infra.Audit, log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		listAppointmentsUC,
		availabilityUC,
		log,
	)

	bookingHandler := handlers.NewBookingHandler(sessions, infra.Catalog, log)

	rateLimit := middleware.RateLimit(cfg.RateLimitPerMin, log)
	auth := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 CATÁLOGO PÚBLICO
		// ------------------------------
		public := api.Group("/")
		public.Use(rateLimit)
		{
			public.GET("/services", catalogHandler.ListServices)
			public.GET("/barbers", catalogHandler.ListBarbers)
			public.GET("/barbers/:id/availability", appointmentHandler.Availability)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(auth)
		{
			secured.POST("/barbers", adminOnly, catalogHandler.CreateBarber)
			secured.DELETE("/barbers/:id", adminOnly, catalogHandler.DeleteBarber)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", adminOnly, appointmentHandler.ListAll)
			secured.POST("/appointments", rateLimit, appointmentHandler.Create)
			secured.GET("/appointments/barber/:barberId", appointmentHandler.ListForBarber)
			secured.GET("/appointments/client/:clientId", appointmentHandler.ListForClient)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// BOOKING FLOW
			// ------------------------------
			flow := secured.Group("/booking/sessions")
			flow.Use(rateLimit)
			{
				flow.POST("", bookingHandler.Start)
				flow.GET("/:id", bookingHandler.Get)
				flow.DELETE("/:id", bookingHandler.Discard)
				flow.POST("/:id/service", bookingHandler.SelectService)
				flow.POST("/:id/barber", bookingHandler.SelectBarber)
				flow.GET("/:id/slots", bookingHandler.Slots)
				flow.POST("/:id/refresh", bookingHandler.Refresh)
				flow.POST("/:id/slot", bookingHandler.SelectSlot)
				flow.POST("/:id/confirm", bookingHandler.Confirm)
				flow.POST("/:id/back", bookingHandler.Back)
				flow.POST("/:id/reset", bookingHandler.Reset)
			}

			// ------------------------------
			// AUDITORÍA (solo con base de datos)
			// ------------------------------
			if infra.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(infra.DB)
				secured.GET("/admin/audit-logs", adminOnly, auditLogsHandler.List)
			}
		}
	}
}
