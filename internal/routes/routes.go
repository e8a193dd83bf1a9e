package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/clock"
	"github.com/BruksfildServices01/booking-platform/internal/config"
	"github.com/BruksfildServices01/booking-platform/internal/events"
	"github.com/BruksfildServices01/booking-platform/internal/handlers"
	"github.com/BruksfildServices01/booking-platform/internal/infra/repository"
	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	"github.com/BruksfildServices01/booking-platform/internal/notify"
	ucappointment "github.com/BruksfildServices01/booking-platform/internal/usecase/appointment"
	ucrecurrence "github.com/BruksfildServices01/booking-platform/internal/usecase/recurrence"
)

// RegisterRoutes monta a árvore de dependências e pendura as rotas: uma
// superfície pública por slug e o painel autenticado em /me.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	log zerolog.Logger,
) {

	// ------------------------------------------------------------------
	// Infra compartilhada
	// ------------------------------------------------------------------
	repo := repository.NewAppointmentGormRepository(db)
	clk := clock.Real{}

	auditor := audit.NewDispatcher(audit.New(db), log)
	notifier := notify.NewDispatcher(notify.LogSender{Log: log}, log)
	publisher := events.NewPublisher(rdb, log)

	// ------------------------------------------------------------------
	// Casos de uso
	// ------------------------------------------------------------------
	dayAvailability := ucappointment.NewGetAvailability(repo, clk)
	monthAvailability := ucappointment.NewGetMonthAvailability(repo, clk)

	createAppointment := ucappointment.NewCreateAppointment(repo, notifier, publisher, auditor, clk)
	rescheduleAppointment := ucappointment.NewRescheduleAppointment(repo, notifier, publisher, auditor, clk)
	cancelAppointment := ucappointment.NewCancelAppointment(repo, publisher, auditor, clk)
	confirmAppointment := ucappointment.NewConfirmAppointment(repo, auditor)
	completeAppointment := ucappointment.NewCompleteAppointment(repo, auditor, clk)
	markNoShow := ucappointment.NewMarkNoShow(repo, publisher, auditor, clk)

	listByDate := ucappointment.NewListAppointmentsByDate(repo)
	listByMonth := ucappointment.NewListAppointmentsByMonth(repo)
	joinWaitlist := ucappointment.NewJoinWaitlist(repo, clk, auditor)

	previewSeries := ucrecurrence.NewPreviewSeries(repo, clk)
	createSeries := ucrecurrence.NewCreateSeries(repo, notifier, publisher, auditor, clk)
	updateSeries := ucrecurrence.NewUpdateSeries(repo, publisher, auditor, clk)
	cancelSeries := ucrecurrence.NewCancelSeries(repo, publisher, auditor, clk)

	// ------------------------------------------------------------------
	// Handlers
	// ------------------------------------------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)
	productHandler := handlers.NewBarberProductHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(db, dayAvailability, monthAvailability)
	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointment,
		rescheduleAppointment,
		cancelAppointment,
		confirmAppointment,
		completeAppointment,
		markNoShow,
		listByDate,
		listByMonth,
	)
	recurrenceHandler := handlers.NewRecurrenceHandler(previewSeries, createSeries, updateSeries, cancelSeries)

	scheduleConfigHandler := handlers.NewScheduleConfigHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	waitlistHandler := handlers.NewWaitlistHandler(db)

	publicHandler := handlers.NewPublicHandler(db, dayAvailability, monthAvailability, createAppointment, joinWaitlist)

	// ------------------------------------------------------------------
	// Rotas públicas
	// ------------------------------------------------------------------
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	public := r.Group("/public/:slug")
	{
		public.GET("", publicHandler.GetShop)
		public.GET("/products", publicHandler.ListProducts)
		public.GET("/barbers", publicHandler.ListBarbers)
		public.GET("/availability", publicHandler.GetDayAvailability)
		public.GET("/availability/month", publicHandler.GetMonthAvailability)
		public.POST("/appointments", publicHandler.CreateBooking)
		public.POST("/waitlist", publicHandler.JoinWaitlist)
	}

	// ------------------------------------------------------------------
	// Painel autenticado
	// ------------------------------------------------------------------
	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware(cfg))
	{
		me.GET("", meHandler.GetMe)

		me.GET("/barbershop", barbershopHandler.GetMeBarbershop)
		me.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)

		me.GET("/products", productHandler.List)
		me.POST("/products", productHandler.Create)
		me.PATCH("/products/:id", productHandler.Update)
		me.DELETE("/products/:id", productHandler.Deactivate)

		me.GET("/clients", clientHandler.List)
		me.GET("/audit-logs", auditLogsHandler.List)

		me.GET("/availability", availabilityHandler.GetDay)
		me.GET("/availability/month", availabilityHandler.GetMonth)

		me.GET("/appointments", appointmentHandler.List)
		me.POST("/appointments", appointmentHandler.Create)
		me.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		me.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		me.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		me.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

		me.POST("/appointments/series/preview", recurrenceHandler.Preview)
		me.POST("/appointments/series", recurrenceHandler.Create)
		me.PATCH("/appointments/series/:id", recurrenceHandler.Update)
		me.PATCH("/appointments/series/:id/cancel", recurrenceHandler.Cancel)

		me.GET("/schedule/business-hours", scheduleConfigHandler.GetBusinessHours)
		me.PUT("/schedule/business-hours", scheduleConfigHandler.PutBusinessHours)
		me.GET("/schedule/special-hours", scheduleConfigHandler.ListSpecialHours)
		me.PUT("/schedule/special-hours", scheduleConfigHandler.PutSpecialHours)
		me.DELETE("/schedule/special-hours/:id", scheduleConfigHandler.DeleteSpecialHours)
		me.GET("/schedule/blocked-dates", scheduleConfigHandler.ListBlockedDates)
		me.POST("/schedule/blocked-dates", scheduleConfigHandler.CreateBlockedDate)
		me.DELETE("/schedule/blocked-dates/:id", scheduleConfigHandler.DeleteBlockedDate)
		me.GET("/schedule/unit-schedules", scheduleConfigHandler.GetUnitSchedule)
		me.PUT("/schedule/unit-schedules", scheduleConfigHandler.PutUnitSchedule)
		me.GET("/schedule/working-hours", workingHoursHandler.Get)
		me.PUT("/schedule/working-hours", workingHoursHandler.Put)

		me.GET("/waitlist", waitlistHandler.List)
		me.PATCH("/waitlist/:id/notify", waitlistHandler.Notify)
	}
}
