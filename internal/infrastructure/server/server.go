package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/lingualog/core/internal/adapters/http"
	"github.com/lingualog/core/internal/adapters/repository"
	"github.com/lingualog/core/internal/adapters/translator"
	"github.com/lingualog/core/internal/application/services"
	"github.com/lingualog/core/internal/infrastructure/config"
	"github.com/lingualog/core/internal/infrastructure/database"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	activityRepo := repository.NewActivityRepository(db.DB)
	journeyRepo := repository.NewJourneyRepository(db.DB)
	taskRepo := repository.NewTaskStateRepository(db.DB)
	journalRepo := repository.NewJournalRepository(db.DB)
	collectionRepo := repository.NewCollectionRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	// Initialize services, each logging under its own component
	authService := services.NewAuthService(userRepo, cfg.JWT, appLogger.WithComponent("auth"))
	activityService := services.NewActivityService(activityRepo, appLogger.WithComponent("activity"))
	taskService := services.NewTaskService(taskRepo, activityRepo, appLogger.WithComponent("tasks"))
	journeyService := services.NewJourneyService(journeyRepo, activityRepo, taskService, cfg.Journey, appLogger.WithComponent("journey"))
	journalService := services.NewJournalService(journalRepo, activityRepo, appLogger.WithComponent("journal"))
	collectionService := services.NewCollectionService(collectionRepo, activityRepo, appLogger.WithComponent("collections"))
	translationService := services.NewTranslationService(appLogger.WithComponent("translation"), buildTranslators(cfg.Translator, appLogger)...)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	journeyHandler := httpHandlers.NewJourneyHandler(journeyService, activityService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	journalHandler := httpHandlers.NewJournalHandler(journalService, appLogger)
	collectionHandler := httpHandlers.NewCollectionHandler(collectionService, appLogger)
	translateHandler := httpHandlers.NewTranslateHandler(translationService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, journeyHandler, taskHandler, journalHandler, collectionHandler, translateHandler, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// buildTranslators assembles the translation provider chain. A missing API
// key leaves the free fallback as the only provider instead of failing
// startup.
func buildTranslators(cfg config.TranslatorConfig, appLogger *logger.Logger) []ports.Translator {
	var providers []ports.Translator

	if primary, err := translator.NewOpenAIClient(cfg); err != nil {
		appLogger.Warnw("LLM translator disabled", "reason", err.Error())
	} else {
		providers = append(providers, primary)
	}

	providers = append(providers, translator.NewMyMemoryClient(cfg))

	return providers
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, journeyHandler *httpHandlers.JourneyHandler, taskHandler *httpHandlers.TaskHandler, journalHandler *httpHandlers.JournalHandler, collectionHandler *httpHandlers.CollectionHandler, translateHandler *httpHandlers.TranslateHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)

	auth := s.authMiddleware(authService)

	// Journey routes (authenticated)
	journeyGroup := v1.Group("/journey", auth)
	journeyGroup.GET("/status", journeyHandler.Status)
	journeyGroup.POST("/update-activity", journeyHandler.UpdateActivity)
	journeyGroup.POST("/complete-day", journeyHandler.CompleteDay)
	journeyGroup.GET("/landmarks", journeyHandler.Landmarks)
	journeyGroup.GET("/achievements", journeyHandler.Achievements)

	// Progress routes (authenticated)
	progressGroup := v1.Group("/progress", auth)
	progressGroup.GET("/streak", journeyHandler.Streak)
	progressGroup.GET("/activity", journeyHandler.Activity)

	// Daily task routes (authenticated)
	taskGroup := v1.Group("/daily-tasks", auth)
	taskGroup.GET("", taskHandler.ListToday)
	taskGroup.POST("/:id/start", taskHandler.Start)
	taskGroup.POST("/:id/pause", taskHandler.Pause)
	taskGroup.POST("/:id/resume", taskHandler.Resume)
	taskGroup.POST("/:id/complete", taskHandler.Complete)

	// Journal routes (authenticated)
	journalGroup := v1.Group("/journal", auth)
	journalGroup.GET("", journalHandler.ListEntries)
	journalGroup.POST("", journalHandler.CreateEntry)
	journalGroup.GET("/:id", journalHandler.GetEntry)
	journalGroup.PUT("/:id", journalHandler.UpdateEntry)
	journalGroup.DELETE("/:id", journalHandler.DeleteEntry)

	// Collection routes (authenticated)
	vocabGroup := v1.Group("/vocabulary", auth)
	vocabGroup.GET("", collectionHandler.ListVocabulary)
	vocabGroup.POST("", collectionHandler.AddVocabulary)
	vocabGroup.PUT("/:id", collectionHandler.UpdateVocabulary)
	vocabGroup.DELETE("/:id", collectionHandler.DeleteVocabulary)

	phraseGroup := v1.Group("/phrases", auth)
	phraseGroup.GET("", collectionHandler.ListPhrases)
	phraseGroup.POST("", collectionHandler.AddPhrase)
	phraseGroup.DELETE("/:id", collectionHandler.DeletePhrase)

	categoryGroup := v1.Group("/categories", auth)
	categoryGroup.GET("", collectionHandler.ListCategories)
	categoryGroup.POST("", collectionHandler.CreateCategory)

	// Translation route (authenticated)
	v1.POST("/translate", translateHandler.Translate, auth)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  "1.21",
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
