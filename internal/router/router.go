package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sauti-app/backend/internal/email"
	"github.com/sauti-app/backend/internal/handlers"
	"github.com/sauti-app/backend/internal/middleware"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"github.com/sauti-app/backend/internal/storage"
	"github.com/sauti-app/backend/pkg/config"
	"github.com/sauti-app/backend/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(metrics.Middleware())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	firebaseAuthClient *auth.Client,
	cfg *config.Config,
	logger *zap.Logger,
) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Guy{},
		&models.Story{},
		&models.Comment{},
		&models.StoryReaction{},
		&models.Message{},
		&models.Campaign{},
		&models.CampaignRecipient{},
	)
	if err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	guyRepo := repositories.NewPostgresGuyRepository(pgdb)
	storyRepo := repositories.NewPostgresStoryRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	campaignRepo := repositories.NewPostgresCampaignRepository(pgdb)

	// --- Collaborators ---
	presigner, err := storage.NewS3Presigner(cfg)
	if err != nil {
		logger.Warn("object storage not configured, presigned uploads disabled", zap.Error(err))
	}
	var sender email.Sender
	smtpSender, err := email.NewSMTPSender(cfg)
	if err != nil {
		logger.Warn("SMTP not configured, campaign sending disabled", zap.Error(err))
	} else {
		sender = smtpSender
	}
	campaignSender := email.NewCampaignSender(campaignRepo, sender, logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Authenticated routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Verification flow and profile are reachable before approval.
	verificationHandler := handlers.NewVerificationHandler(userRepo)
	verificationHandler.RegisterVerificationRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	if presigner != nil {
		uploadHandler := handlers.NewUploadHandler(presigner)
		uploadHandler.RegisterUploadRoutes(api)
	}

	// --- Verified-only routes ---
	verified := e.Group("/api/v1")
	verified.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	verified.Use(middleware.RequireVerified(userRepo))

	storyHandler := handlers.NewStoryHandler(storyRepo, guyRepo, userRepo)
	storyHandler.RegisterStoryRoutes(verified)

	commentHandler := handlers.NewCommentHandler(commentRepo, storyRepo, userRepo)
	commentHandler.RegisterCommentRoutes(verified)

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	messageHandler.RegisterMessageRoutes(verified)

	// --- Admin routes ---
	admin := e.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	admin.Use(middleware.RequireAdmin(cfg))

	adminHandler := handlers.NewAdminHandler(userRepo, storyRepo, commentRepo, messageRepo, campaignRepo, campaignSender, logger)
	adminHandler.RegisterAdminRoutes(admin)

	logger.Info("all routes configured")
	return nil
}
