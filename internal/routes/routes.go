package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/config"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/handlers"
	infraRepo "github.com/RodaNovaServices01/wheel-repair-api/internal/infra/repository"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/middleware"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
	ucReservation "github.com/RodaNovaServices01/wheel-repair-api/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditRecorder := audit.NewRecorder(db)
	auditStore := audit.NewStore(db)

	// ======================================================
	// 🧠 USE CASES — RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditRecorder,
	)

	confirmReservationUC := ucReservation.NewConfirmReservation(
		reservationRepo,
		auditRecorder,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditRecorder,
	)

	completeReservationUC := ucReservation.NewCompleteReservation(
		reservationRepo,
		auditRecorder,
	)

	listReservationsByDateUC := ucReservation.NewListReservationsByDate(
		reservationRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, auditRecorder)
	quoteHandler := handlers.NewQuoteHandler(db, auditRecorder)
	invoiceHandler := handlers.NewInvoiceHandler(db, auditRecorder)
	workflowHandler := handlers.NewWorkflowHandler(db, auditRecorder)
	taskHandler := handlers.NewWorkshopTaskHandler(db, auditRecorder)
	userHandler := handlers.NewUserHandler(db, auditRecorder)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		confirmReservationUC,
		cancelReservationUC,
		completeReservationUC,
		listReservationsByDateUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditStore)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/shop", shopHandler.Get)
			secured.PATCH("/shop", shopHandler.Update)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// QUOTES
			// ------------------------------
			secured.GET("/quotes", quoteHandler.List)
			secured.GET("/quotes/:id", quoteHandler.Get)
			secured.POST("/quotes", quoteHandler.Create)
			secured.PATCH("/quotes/:id", quoteHandler.Update)
			secured.PATCH("/quotes/:id/status", quoteHandler.UpdateStatus)
			secured.DELETE("/quotes/:id", quoteHandler.Delete)

			// ------------------------------
			// INVOICES
			// ------------------------------
			secured.GET("/invoices", invoiceHandler.List)
			secured.GET("/invoices/:id", invoiceHandler.Get)
			secured.POST("/invoices", invoiceHandler.Create)
			secured.PATCH("/invoices/:id/status", invoiceHandler.UpdateStatus)
			secured.DELETE("/invoices/:id", invoiceHandler.Delete)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations", reservationHandler.ListByDate)
			secured.PATCH("/reservations/:id/confirm", reservationHandler.Confirm)
			secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
			secured.PATCH("/reservations/:id/complete", reservationHandler.Complete)

			// ------------------------------
			// WORKFLOWS
			// ------------------------------
			secured.GET("/workflows/:id", workflowHandler.Get)
			secured.POST("/workflows", workflowHandler.Create)
			secured.PATCH("/workflows/steps/:stepId/complete", workflowHandler.CompleteStep)

			// ------------------------------
			// WORKSHOP TASKS
			// ------------------------------
			secured.GET("/tasks", taskHandler.List)
			secured.POST("/tasks", taskHandler.Create)
			secured.PATCH("/tasks/:id", taskHandler.Update)
			secured.DELETE("/tasks/:id", taskHandler.Delete)

			// ------------------------------
			// 🔒 ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", userHandler.List)
				admin.PATCH("/users/:id", userHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
				admin.GET("/audit-logs/:id", auditLogsHandler.Get)
				admin.GET("/entity-history/:entityType/:entityId", auditLogsHandler.EntityHistory)
			}
		}
	}
}
