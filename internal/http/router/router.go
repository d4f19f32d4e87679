package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/config"
	"github.com/reproute/crm-api/internal/database"
	"github.com/reproute/crm-api/internal/datawarehouse"
	"github.com/reproute/crm-api/internal/http/handler"
	"github.com/reproute/crm-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/reproute/crm-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	dwClient         *datawarehouse.Client
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	clientHandler    *handler.ClientHandler
	visitHandler     *handler.VisitHandler
	dashboardHandler *handler.DashboardHandler
	scheduleHandler  *handler.ScheduleHandler
	fileHandler      *handler.FileHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	dwClient *datawarehouse.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	clientHandler *handler.ClientHandler,
	visitHandler *handler.VisitHandler,
	dashboardHandler *handler.DashboardHandler,
	scheduleHandler *handler.ScheduleHandler,
	fileHandler *handler.FileHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		dwClient:         dwClient,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		clientHandler:    clientHandler,
		visitHandler:     visitHandler,
		dashboardHandler: dashboardHandler,
		scheduleHandler:  scheduleHandler,
		fileHandler:      fileHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"wait_count":       stats.WaitCount,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// The warehouse is optional, so its status is reported but a
		// broken connection does not fail readiness.
		if rt.dwClient.IsEnabled() {
			checks["warehouse"] = rt.dwClient.HealthCheck(r.Context())
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", rt.clientHandler.List)
				r.Post("/", rt.clientHandler.Create)
				r.Post("/import", rt.clientHandler.Import)
				r.Get("/{id}", rt.clientHandler.GetByID)
				r.Put("/{id}", rt.clientHandler.Update)
				r.Delete("/{id}", rt.clientHandler.Delete)
				r.Get("/{id}/visits", rt.clientHandler.ListVisits)
			})

			// Visits
			r.Route("/visits", func(r chi.Router) {
				r.Get("/", rt.visitHandler.List)
				r.Post("/", rt.visitHandler.Create)
				r.Delete("/{id}", rt.visitHandler.Delete)
			})

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.GetMetrics)

			// Weekly schedule
			r.Route("/schedule", func(r chi.Router) {
				r.Get("/", rt.scheduleHandler.List)
				r.Put("/", rt.scheduleHandler.Upsert)
				r.Post("/", rt.scheduleHandler.Upsert)
				r.Delete("/{id}", rt.scheduleHandler.Delete)
			})

			// Visit attachments
			r.Route("/files", func(r chi.Router) {
				r.Post("/upload", rt.fileHandler.Upload)
				r.Get("/download", rt.fileHandler.Download)
			})
		})
	})

	return r
}
