package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tngolf/booking-api/internal/audit"
	"github.com/tngolf/booking-api/internal/authz"
	"github.com/tngolf/booking-api/internal/cache"
	"github.com/tngolf/booking-api/internal/config"
	"github.com/tngolf/booking-api/internal/handlers"
	infraPayment "github.com/tngolf/booking-api/internal/infra/payment"
	infraRepo "github.com/tngolf/booking-api/internal/infra/repository"
	"github.com/tngolf/booking-api/internal/middleware"
	"github.com/tngolf/booking-api/internal/notify"
	ucBooking "github.com/tngolf/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	paymentBridge := infraPayment.NewStripeBridge(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
	)

	mailer := notify.NewMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.EmailFrom,
		cfg.CoachEmail,
	)
	effects := notify.NewDispatcher(mailer, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	policy := authz.NewCoachEmailPolicy(cfg.CoachEmail)

	availabilityCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)

	listMineUC := ucBooking.NewListUserBookings(bookingRepo)

	requestCancellationUC := ucBooking.NewRequestCancellation(
		bookingRepo,
		effects,
		auditDispatcher,
	)

	receiptUC := ucBooking.NewGetReceipt(bookingRepo, paymentBridge)

	// ======================================================
	// USE CASES — PAYMENTS
	// ======================================================
	initiatePaymentUC := ucBooking.NewInitiatePayment(
		bookingRepo,
		paymentBridge,
		cfg.AppURL,
	)

	paymentEventsUC := ucBooking.NewPaymentEvents(
		bookingRepo,
		paymentBridge,
		effects,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — COACH
	// ======================================================
	listAllUC := ucBooking.NewListAllBookings(bookingRepo, policy)

	confirmUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		policy,
		paymentBridge,
		effects,
		auditDispatcher,
	)

	cancelUC := ucBooking.NewCancelBooking(
		bookingRepo,
		policy,
		effects,
		auditDispatcher,
	)

	deleteUC := ucBooking.NewDeleteBooking(bookingRepo, policy, auditDispatcher)

	blockUC := ucBooking.NewBlockSlot(bookingRepo, policy, auditDispatcher)
	unblockUC := ucBooking.NewUnblockSlot(bookingRepo, policy, auditDispatcher)
	listBlockedUC := ucBooking.NewListBlockedSlots(bookingRepo, policy)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createBookingUC,
		listMineUC,
		requestCancellationUC,
		receiptUC,
		availabilityCache,
	)

	paymentHandler := handlers.NewPaymentHandler(
		initiatePaymentUC,
		paymentEventsUC,
		availabilityCache,
	)

	adminHandler := handlers.NewAdminHandler(
		listAllUC,
		confirmUC,
		cancelUC,
		deleteUC,
		blockUC,
		unblockUC,
		listBlockedUC,
		auditLogger,
		policy,
		availabilityCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/bookings/available", bookingHandler.Availability)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// The webhook is authenticated by its signature, not a JWT.
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			secured.GET("/bookings", bookingHandler.ListMine)
			secured.POST("/bookings", bookingHandler.Create)
			secured.POST("/bookings/:id/cancel", bookingHandler.RequestCancellation)
			secured.GET("/receipt/:id", bookingHandler.Receipt)

			secured.POST("/payments/checkout", paymentHandler.CreateCheckout)
			secured.POST("/payments/check", paymentHandler.CheckPayment)

			// ------------------------------
			// COACH
			// ------------------------------
			admin := secured.Group("/admin")
			{
				admin.GET("/bookings", adminHandler.ListBookings)
				admin.PATCH("/bookings/:id", adminHandler.UpdateBookingStatus)
				admin.DELETE("/bookings/:id", adminHandler.DeleteBooking)

				admin.GET("/blocked-slots", adminHandler.ListBlockedSlots)
				admin.POST("/blocked-slots", adminHandler.BlockSlot)
				admin.DELETE("/blocked-slots/:id", adminHandler.UnblockSlot)

				admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}
}
