package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/groomer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/blockedslot"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/dashboard"
	"github.com/BruksfildServices01/groomer-scheduler/internal/usecase/reminder"
)

// Deps é a infraestrutura montada no main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Notifier ucAppointment.Notifier
	Store    domain.FileStore
	// Locker nil desliga o guard de envio duplicado.
	Locker middleware.SubmitLocker
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	blockedRepo := infraRepo.NewBlockedSlotGormRepository(d.DB)
	petRepo := infraRepo.NewPetGormRepository(d.DB)

	settings := ucAppointment.Settings{
		Timezone:      cfg.Timezone,
		StaffCatalog:  cfg.StaffCatalog,
		PublicCatalog: cfg.PublicCatalog,
		SlotCapacity:  cfg.SlotCapacity,
		BusinessPhone: cfg.BusinessPhone,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		CreateCustomer: ucAppointment.NewCreateCustomerAppointment(appointmentRepo, settings, d.Audit, d.Notifier),
		CreateStaff:    ucAppointment.NewCreateStaffAppointment(appointmentRepo, settings, d.Audit, d.Notifier),
		Confirm:        ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit, d.Notifier),
		Reject:         ucAppointment.NewRejectAppointment(appointmentRepo, d.Audit, d.Notifier),
		Cancel:         ucAppointment.NewCancelAppointment(appointmentRepo, settings, d.Audit, d.Notifier),
		Reschedule:     ucAppointment.NewRescheduleAppointment(appointmentRepo, settings, d.Audit, d.Notifier),
		SaveProgress:   ucAppointment.NewSaveProgress(appointmentRepo, d.Audit),
		AttachPhoto:    ucAppointment.NewAttachPhoto(appointmentRepo, d.Store, d.Audit),
		Complete:       ucAppointment.NewCompleteAppointment(appointmentRepo, d.Store, d.Audit),
		Delete:         ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		Availability:   ucAppointment.NewGetAvailability(appointmentRepo, settings),
		List:           ucAppointment.NewListAppointments(appointmentRepo),
		Detail:         ucAppointment.NewGetAppointmentDetail(appointmentRepo),
	}

	blockedSvc := blockedslot.NewService(blockedRepo, cfg.StaffCatalog, d.Audit)
	listDueUC := reminder.NewListDuePets(petRepo, cfg.Timezone)
	countsUC := dashboard.NewGetCounts(appointmentRepo, petRepo, listDueUC, cfg.Timezone, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, handlers.AuthConfig{
		JWTSecret:         cfg.JWTSecret,
		VerifyEmailDomain: cfg.VerifyEmailDomain,
	}, d.Audit)
	meHandler := handlers.NewMeHandler(d.DB, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC)
	blockedHandler := handlers.NewBlockedSlotHandler(blockedSvc)
	reminderHandler := handlers.NewReminderHandler(listDueUC, countsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg.Timezone)
	publicHandler := handlers.NewPublicHandler(cfg.PublicCatalog, cfg.Timezone)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMin)
	submitGuard := middleware.SubmitGuard(d.Locker)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(limiter.Middleware())
		{
			publicAPI.GET("/slots", publicHandler.Slots)
			publicAPI.GET("/availability", appointmentHandler.PublicAvailability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(limiter.Middleware())
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))

		// ------------------------------
		// CLIENTE
		// ------------------------------
		me := secured.Group("/me")
		me.Use(middleware.RequireRole(models.RoleCustomer))
		{
			me.GET("", meHandler.GetMe)
			me.GET("/pets", meHandler.ListPets)
			me.POST("/pets", submitGuard, meHandler.CreatePet)

			me.GET("/appointments", appointmentHandler.ListMine)
			me.POST("/appointments", submitGuard, appointmentHandler.CustomerCreate)
			me.GET("/appointments/:id", appointmentHandler.Detail)
			me.PATCH("/appointments/:id/cancel", submitGuard, appointmentHandler.Cancel)
			me.PATCH("/appointments/:id/reschedule", submitGuard, appointmentHandler.Reschedule)
		}

		// ------------------------------
		// EQUIPE
		// ------------------------------
		staff := secured.Group("/staff")
		staff.Use(middleware.RequireRole(models.RoleOwner, models.RoleEmployee))
		{
			staff.GET("/availability", appointmentHandler.StaffAvailability)

			staff.GET("/appointments", appointmentHandler.List)
			staff.GET("/appointments/month", appointmentHandler.ListMonth)
			staff.GET("/appointments/:id", appointmentHandler.Detail)
			staff.POST("/appointments", submitGuard, appointmentHandler.StaffCreate)
			staff.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			staff.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
			staff.PATCH("/appointments/:id/progress", appointmentHandler.SaveProgress)
			staff.PUT("/appointments/:id/photos/:type", appointmentHandler.AttachPhoto)
			staff.POST("/appointments/:id/complete", submitGuard, appointmentHandler.Complete)

			staff.GET("/blocked-slots", blockedHandler.List)
			staff.POST("/blocked-slots", blockedHandler.Create)
			staff.DELETE("/blocked-slots", blockedHandler.Delete)

			staff.GET("/reminders/due", reminderHandler.Due)
			staff.GET("/dashboard", reminderHandler.Dashboard)

			staff.GET("/clients", clientHandler.List)
			staff.POST("/clients", submitGuard, clientHandler.Create)
			staff.POST("/clients/:id/pets", submitGuard, clientHandler.CreatePet)
			staff.PATCH("/pets/:id", clientHandler.UpdatePet)
			staff.GET("/pets/:id/weights", clientHandler.PetWeights)

			staff.GET("/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// DONO
			// ------------------------------
			owner := staff.Group("")
			owner.Use(middleware.RequireRole(models.RoleOwner))
			{
				owner.DELETE("/appointments/:id", appointmentHandler.Delete)
				owner.POST("/employees", authHandler.CreateEmployee)
			}
		}
	}
}
