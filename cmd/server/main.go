package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/subosito/gotenv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/truthlens/truthlens-backend/internal/clients"
	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/database"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/handlers"
	"github.com/truthlens/truthlens-backend/internal/logging"
	"github.com/truthlens/truthlens-backend/internal/middleware"
	"github.com/truthlens/truthlens-backend/internal/routes"
	"github.com/truthlens/truthlens-backend/internal/services"
)

func main() {
	gotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.Env)

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Persist ERROR+ records alongside stdout logging.
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanout(
		logging.StdoutHandler(cfg.Env),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Collaborators
	mlClient := clients.NewMLClient(cfg)
	reverseSearch := clients.NewReverseSearch(time.Now().UnixNano())
	factCheck := clients.NewFactCheck()
	pageFetcher := clients.NewPageFetcher(cfg.URLFetchTimeout)

	// Services
	contentService := services.NewContentService(database.DB)
	feedbackService := services.NewFeedbackService(database.DB)
	alertService := services.NewAlertService(database.DB)
	challengeService := services.NewChallengeService(database.DB)
	leaderboardService := services.NewLeaderboardService(database.DB)
	userService := services.NewUserService(database.DB)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	analyzeHandler := handlers.NewAnalyzeHandler(cfg, mlClient, reverseSearch, factCheck, pageFetcher, contentService, alertService, feedbackService)
	gameHandler := handlers.NewGameHandler(challengeService, userService, leaderboardService)
	adminHandler := handlers.NewAdminHandler(alertService, contentService, userService, challengeService)
	userHandler := handlers.NewUserHandler(contentService, feedbackService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.MaxFileSize),
		ErrorHandler: errorHandler(cfg),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	routes.Setup(app, cfg, database.DB, limiter, healthHandler, analyzeHandler, gameHandler, adminHandler, userHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if limiter != nil {
		limiter.Stop()
	}
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// errorHandler maps unhandled errors into the standard envelope.
// Internal detail is suppressed outside development.
func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		details := ""
		if code >= 500 {
			slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			message = "Internal server error"
			if !cfg.Production() {
				details = err.Error()
			}
		}

		return c.Status(code).JSON(dto.NewError(code, message, details))
	}
}
