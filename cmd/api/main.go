package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reproute/crm-api/docs"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/config"
	"github.com/reproute/crm-api/internal/database"
	"github.com/reproute/crm-api/internal/datawarehouse"
	"github.com/reproute/crm-api/internal/http/handler"
	"github.com/reproute/crm-api/internal/http/middleware"
	"github.com/reproute/crm-api/internal/http/router"
	"github.com/reproute/crm-api/internal/jobs"
	"github.com/reproute/crm-api/internal/logger"
	"github.com/reproute/crm-api/internal/repository"
	"github.com/reproute/crm-api/internal/service"
	"github.com/reproute/crm-api/internal/storage"
	"go.uber.org/zap"
)

// inactiveDigestTimeout bounds the nightly inactive-clients digest run
const inactiveDigestTimeout = 5 * time.Minute

// @title RepRoute CRM API
// @version 1.0
// @description CRM API for traveling sales reps: clients, visits, weekly schedule and dashboard metrics
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@reproute.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "staging-api.reproute.app"
	case "production":
		docs.SwaggerInfo.Host = "api.reproute.app"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// In development, sync the schema automatically so a fresh checkout
	// runs without the migration step. Other environments use goose.
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize warehouse connection (optional - backs the client import endpoint)
	// This connection is read-only and the app continues without it if not configured
	var dwClient *datawarehouse.Client
	if cfg.Warehouse.Enabled {
		dwClient, err = datawarehouse.NewClient(&cfg.Warehouse, log)
		if err != nil {
			// Log error but don't fail - the warehouse is optional
			log.Warn("Warehouse connection failed, continuing without it",
				zap.Error(err),
			)
		} else if dwClient != nil {
			log.Info("Warehouse connected successfully",
				zap.Int("max_open_conns", cfg.Warehouse.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.Warehouse.QueryTimeout),
			)
		}
	} else {
		log.Info("Warehouse not configured, skipping",
			zap.Bool("enabled", cfg.Warehouse.Enabled),
		)
	}

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo, visitRepo, log)
	if dwClient != nil {
		clientService.SetWarehouseClient(dwClient)
	}
	visitService := service.NewVisitService(visitRepo, clientRepo, log)
	dashboardService := service.NewDashboardService(clientRepo, visitRepo, log)
	scheduleService := service.NewScheduleService(scheduleRepo, log)
	fileService := service.NewFileService(fileStorage, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	clientHandler := handler.NewClientHandler(clientService, visitService, log)
	visitHandler := handler.NewVisitHandler(visitService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, log)
	fileHandler := handler.NewFileHandler(fileService, cfg.Storage.MaxUploadSizeMB, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		dwClient,
		authMiddleware,
		rateLimiter,
		clientHandler,
		visitHandler,
		dashboardHandler,
		scheduleHandler,
		fileHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterInactiveClientsJob(
			scheduler,
			clientRepo,
			visitRepo,
			log,
			cfg.Jobs.InactiveDigestSchedule,
			inactiveDigestTimeout,
		); err != nil {
			log.Error("Failed to register inactive clients digest job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with inactive clients digest job",
				zap.String("cron_expr", cfg.Jobs.InactiveDigestSchedule),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close warehouse connection if initialized
		if dwClient != nil {
			if err := dwClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
