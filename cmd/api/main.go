package main

import (
	"fmt"
	"os"

	"spendly/internal/config"
	"spendly/internal/database"
	"spendly/internal/logger"
	"spendly/internal/server"
	"spendly/internal/validator"
)

// @title           Spendly API
// @version         1.0
// @description     Spendly tracks personal spendings organised in two-level categories.

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the key returned at login.

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := os.MkdirAll(appConfig.ReceiptDir, 0o755); err != nil {
		return fmt.Errorf("failed to create receipt directory: %w", err)
	}

	validator.Register()
	router := server.New(appConfig, server.NewServices(dbManager.DB(), appConfig))

	log.Infow("Starting Spendly API server",
		"port", appConfig.Port,
		"db_driver", appConfig.DBDriver,
		"assistant", appConfig.Assistant != "",
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
