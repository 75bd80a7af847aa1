// Package handlers contains the per-route orchestration layer. Handlers
// depend on small interfaces rather than concrete services so they can
// be exercised with mocks.
package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/clients"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/middleware"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/scoring"
	"gorm.io/datatypes"
)

// MLAnalyzer is the ML microservice boundary. Implementations always
// return a usable result; degraded results carry Unavailable=true.
type MLAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) *clients.MLResult
	AnalyzeImage(ctx context.Context, imagePath string) *clients.MLResult
	AnalyzeMulti(ctx context.Context, payload clients.MultiPayload) *clients.MLResult
}

type ReverseSearcher interface {
	SearchImage(imagePath string) []scoring.SearchMatch
	SearchText(text string) []scoring.SearchMatch
}

type FactChecker interface {
	CheckText(text string) *scoring.FactCheck
	CheckImage(imagePath, ocrText string) *scoring.FactCheck
}

type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*clients.PageMeta, error)
}

type ContentStore interface {
	SaveAnalysisResult(content *models.Content) error
	GetByContentID(contentID string) (*models.Content, error)
	ListByUser(userID uuid.UUID, page, limit int) ([]models.Content, int64, error)
	Delete(contentID string, userID uuid.UUID) error
	Count() (int64, error)
	CountByRiskLevel() (map[string]int64, error)
	DailyActivity(days int) (map[string]int64, error)
}

type FeedbackStore interface {
	Create(userID, contentID uuid.UUID, value, notes string) (*models.Feedback, error)
	Tallies(contentID uuid.UUID) (agree, disagree int64, err error)
	GetByID(id uuid.UUID) (*models.Feedback, error)
	ListByContent(contentID uuid.UUID, page, limit int) ([]models.Feedback, int64, error)
	Update(id, userID uuid.UUID, value, notes string) (*models.Feedback, error)
	Delete(id, userID uuid.UUID) error
}

type AlertStore interface {
	CreateForHighRisk(contentID uuid.UUID, flaggedBy *uuid.UUID, riskLevel string) (*models.Alert, error)
	List(status string, page, limit int) ([]models.Alert, int64, error)
	Resolve(alertID uuid.UUID, status string, actionedBy *uuid.UUID, notes string) (*models.Alert, error)
}

type ChallengeStore interface {
	Random(n, difficulty int) ([]models.Challenge, error)
	GetByID(id uuid.UUID) (*models.Challenge, error)
	Count() (int64, error)
	Create(challenge *models.Challenge) error
	Update(id uuid.UUID, updates map[string]interface{}) (*models.Challenge, error)
	Delete(id uuid.UUID) error
}

type LeaderboardStore interface {
	Upsert(userID uuid.UUID, xp, level int) (*models.LeaderboardEntry, error)
	Top(page, limit int) ([]models.LeaderboardEntry, int64, error)
	Position(userID uuid.UUID) (int64, error)
}

type UserStore interface {
	GetByID(id uuid.UUID) (*models.User, error)
	AddXP(id uuid.UUID, delta int) (*models.User, error)
	TopByXP(limit int) ([]models.User, error)
}

// fail writes the standard error envelope.
func fail(c *fiber.Ctx, status int, message, details string) error {
	return c.Status(status).JSON(dto.NewError(status, message, details))
}

// pageParams reads page/limit query parameters with sane bounds.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// callerUUID resolves the authenticated caller to a typed id, or nil
// for anonymous requests and non-UUID mock principals.
func callerUUID(c *fiber.Ctx) *uuid.UUID {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return nil
	}
	id, err := uuid.Parse(principal.UserID)
	if err != nil {
		return nil
	}
	return &id
}

func toJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
