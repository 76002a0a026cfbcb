package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/router"
	"github.com/sauti-app/backend/pkg/config"
	"github.com/sauti-app/backend/pkg/firebase"
	"github.com/sauti-app/backend/pkg/logger"
	"github.com/sauti-app/backend/pkg/metrics"
	"github.com/sauti-app/backend/validators"
	"go.uber.org/zap"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatal("failed to initialize Firebase", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, firebaseApp.AuthClient, cfg, log); err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	// Metrics listener
	go func() {
		if err := metrics.Serve(cfg.MetricsPort); err != nil {
			log.Warn("metrics listener stopped", zap.Error(err))
		}
	}()

	// Start server
	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
