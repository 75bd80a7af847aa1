package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/handlers"
	"github.com/truthlens/truthlens-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	limiter *middleware.RateLimiter,
	healthHandler *handlers.HealthHandler,
	analyzeHandler *handlers.AnalyzeHandler,
	gameHandler *handlers.GameHandler,
	adminHandler *handlers.AdminHandler,
	userHandler *handlers.UserHandler,
) {
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api/v1")

	if limiter != nil {
		api.Use(limiter.Handler())
	}

	// Analysis. Anonymous callers allowed; authenticated callers own
	// their results.
	analyze := api.Group("/analyze", middleware.OptionalAuth(cfg))
	analyze.Post("/text", analyzeHandler.AnalyzeText)
	analyze.Post("/image", analyzeHandler.AnalyzeImage)
	analyze.Post("/url", analyzeHandler.AnalyzeURL)
	analyze.Post("/feedback", analyzeHandler.SubmitFeedback)

	// Game
	game := api.Group("/game", middleware.OptionalAuth(cfg))
	game.Get("/challenges", gameHandler.ListChallenges)
	game.Post("/answer", gameHandler.SubmitAnswer)
	game.Get("/leaderboard", gameHandler.Leaderboard)
	game.Get("/stats", gameHandler.Stats)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.RequireAuth(cfg), middleware.AdminRequired(db))
	admin.Get("/alerts", adminHandler.ListAlerts)
	admin.Post("/action", adminHandler.ActionAlert)
	admin.Get("/stats", adminHandler.Stats)
	admin.Post("/challenges", adminHandler.CreateChallenge)
	admin.Put("/challenges/:id", adminHandler.UpdateChallenge)
	admin.Delete("/challenges/:id", adminHandler.DeleteChallenge)

	// User content and feedback
	user := api.Group("/user", middleware.OptionalAuth(cfg))
	user.Get("/history", userHandler.History)
	user.Get("/results/:id", userHandler.GetResult)
	user.Get("/content/:id/feedback", userHandler.ListContentFeedback)
	user.Delete("/content/:id", middleware.RequireAuth(cfg), userHandler.DeleteContent)
	user.Put("/feedback/:feedbackId", middleware.RequireAuth(cfg), userHandler.UpdateFeedback)
	user.Delete("/feedback/:feedbackId", middleware.RequireAuth(cfg), userHandler.DeleteFeedback)
}
