package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/audit"
	"github.com/velvetlens/studio-booking/internal/cache"
	"github.com/velvetlens/studio-booking/internal/config"
	"github.com/velvetlens/studio-booking/internal/handlers"
	infraRepo "github.com/velvetlens/studio-booking/internal/infra/repository"
	"github.com/velvetlens/studio-booking/internal/middleware"
	"github.com/velvetlens/studio-booking/internal/payments"
	"github.com/velvetlens/studio-booking/internal/storage"
	ucBooking "github.com/velvetlens/studio-booking/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	slotCache := cache.NewSlotCache(rdb, logger)
	stripeClient := payments.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	uploader := storage.NewUploader(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	policy := cfg.BookingPolicy()

	// ======================================================
	// USE CASES (BOOKING ENGINE)
	// ======================================================
	createSessionUC := ucBooking.NewCreateSession(
		bookingRepo,
		policy,
		slotCache,
		auditDispatcher,
	)

	cancelSessionUC := ucBooking.NewCancelSession(
		bookingRepo,
		policy,
		slotCache,
		auditDispatcher,
	)

	confirmSessionUC := ucBooking.NewConfirmSession(
		bookingRepo,
		slotCache,
		auditDispatcher,
	)

	customRequestUC := ucBooking.NewCreateCustomRequest(
		bookingRepo,
		auditDispatcher,
	)

	occupiedSlotsUC := ucBooking.NewListOccupiedSlots(
		bookingRepo,
		policy,
		slotCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	packageHandler := handlers.NewPackageHandler(db)

	sessionHandler := handlers.NewSessionHandler(
		db,
		cfg,
		createSessionUC,
		cancelSessionUC,
		customRequestUC,
	)

	publicHandler := handlers.NewPublicHandler(cfg, occupiedSlotsUC)
	paymentHandler := handlers.NewPaymentHandler(db, cfg, stripeClient, auditDispatcher)
	webhookHandler := handlers.NewWebhookHandler(db, stripeClient, confirmSessionUC, logger)
	galleryHandler := handlers.NewGalleryHandler(db, uploader, logger)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/packages", packageHandler.List)
		api.GET("/sessions/occupied-slots", publicHandler.OccupiedSlots)
		api.GET("/stripe/config", publicHandler.StripeConfig)
		api.POST("/stripe/webhook", webhookHandler.HandleStripe)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/auth/change-password", authHandler.ChangePassword)

			// ------------------------------
			// SESSIONS
			// ------------------------------
			secured.POST("/sessions", sessionHandler.Create)
			secured.GET("/sessions", sessionHandler.ListMine)
			secured.PUT("/sessions/:id/cancel", sessionHandler.Cancel)
			secured.GET("/calendar-events", sessionHandler.ListCalendarEvents)
			secured.POST("/custom-package", sessionHandler.CreateCustomRequest)

			// ------------------------------
			// PACKAGES (admin)
			// ------------------------------
			secured.POST("/packages", packageHandler.Create)
			secured.PUT("/packages/:id", packageHandler.Update)
			secured.DELETE("/packages/:id", packageHandler.Delete)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.POST("/payments/intent", paymentHandler.CreateIntent)
			secured.POST("/payments/validate-coupon", paymentHandler.ValidateCoupon)
			secured.GET("/payments", paymentHandler.ListMine)

			// ------------------------------
			// GALLERY
			// ------------------------------
			secured.POST("/me/gallery", galleryHandler.Upload)
			secured.GET("/me/gallery", galleryHandler.List)
		}
	}
}
