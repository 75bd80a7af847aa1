package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/truthlens/truthlens-backend/internal/clients"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/scoring"
)

type mockML struct{ mock.Mock }

func (m *mockML) AnalyzeText(ctx context.Context, text string) *clients.MLResult {
	return m.Called(ctx, text).Get(0).(*clients.MLResult)
}

func (m *mockML) AnalyzeImage(ctx context.Context, imagePath string) *clients.MLResult {
	return m.Called(ctx, imagePath).Get(0).(*clients.MLResult)
}

func (m *mockML) AnalyzeMulti(ctx context.Context, payload clients.MultiPayload) *clients.MLResult {
	return m.Called(ctx, payload).Get(0).(*clients.MLResult)
}

type mockSearch struct{ mock.Mock }

func (m *mockSearch) SearchImage(imagePath string) []scoring.SearchMatch {
	if v := m.Called(imagePath).Get(0); v != nil {
		return v.([]scoring.SearchMatch)
	}
	return nil
}

func (m *mockSearch) SearchText(text string) []scoring.SearchMatch {
	if v := m.Called(text).Get(0); v != nil {
		return v.([]scoring.SearchMatch)
	}
	return nil
}

type mockFacts struct{ mock.Mock }

func (m *mockFacts) CheckText(text string) *scoring.FactCheck {
	if v := m.Called(text).Get(0); v != nil {
		return v.(*scoring.FactCheck)
	}
	return nil
}

func (m *mockFacts) CheckImage(imagePath, ocrText string) *scoring.FactCheck {
	if v := m.Called(imagePath, ocrText).Get(0); v != nil {
		return v.(*scoring.FactCheck)
	}
	return nil
}

type mockPages struct{ mock.Mock }

func (m *mockPages) Fetch(ctx context.Context, rawURL string) (*clients.PageMeta, error) {
	args := m.Called(ctx, rawURL)
	if v := args.Get(0); v != nil {
		return v.(*clients.PageMeta), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockContents struct{ mock.Mock }

func (m *mockContents) SaveAnalysisResult(content *models.Content) error {
	return m.Called(content).Error(0)
}

func (m *mockContents) GetByContentID(contentID string) (*models.Content, error) {
	args := m.Called(contentID)
	if v := args.Get(0); v != nil {
		return v.(*models.Content), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContents) ListByUser(userID uuid.UUID, page, limit int) ([]models.Content, int64, error) {
	args := m.Called(userID, page, limit)
	var items []models.Content
	if v := args.Get(0); v != nil {
		items = v.([]models.Content)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockContents) Delete(contentID string, userID uuid.UUID) error {
	return m.Called(contentID, userID).Error(0)
}

func (m *mockContents) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContents) CountByRiskLevel() (map[string]int64, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.(map[string]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContents) DailyActivity(days int) (map[string]int64, error) {
	args := m.Called(days)
	if v := args.Get(0); v != nil {
		return v.(map[string]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFeedback struct{ mock.Mock }

func (m *mockFeedback) Create(userID, contentID uuid.UUID, value, notes string) (*models.Feedback, error) {
	args := m.Called(userID, contentID, value, notes)
	if v := args.Get(0); v != nil {
		return v.(*models.Feedback), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedback) Tallies(contentID uuid.UUID) (int64, int64, error) {
	args := m.Called(contentID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *mockFeedback) GetByID(id uuid.UUID) (*models.Feedback, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.Feedback), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedback) ListByContent(contentID uuid.UUID, page, limit int) ([]models.Feedback, int64, error) {
	args := m.Called(contentID, page, limit)
	var items []models.Feedback
	if v := args.Get(0); v != nil {
		items = v.([]models.Feedback)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockFeedback) Update(id, userID uuid.UUID, value, notes string) (*models.Feedback, error) {
	args := m.Called(id, userID, value, notes)
	if v := args.Get(0); v != nil {
		return v.(*models.Feedback), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedback) Delete(id, userID uuid.UUID) error {
	return m.Called(id, userID).Error(0)
}

type mockAlerts struct{ mock.Mock }

func (m *mockAlerts) CreateForHighRisk(contentID uuid.UUID, flaggedBy *uuid.UUID, riskLevel string) (*models.Alert, error) {
	args := m.Called(contentID, flaggedBy, riskLevel)
	if v := args.Get(0); v != nil {
		return v.(*models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlerts) List(status string, page, limit int) ([]models.Alert, int64, error) {
	args := m.Called(status, page, limit)
	var items []models.Alert
	if v := args.Get(0); v != nil {
		items = v.([]models.Alert)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockAlerts) Resolve(alertID uuid.UUID, status string, actionedBy *uuid.UUID, notes string) (*models.Alert, error) {
	args := m.Called(alertID, status, actionedBy, notes)
	if v := args.Get(0); v != nil {
		return v.(*models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockChallenges struct{ mock.Mock }

func (m *mockChallenges) Random(n, difficulty int) ([]models.Challenge, error) {
	args := m.Called(n, difficulty)
	var items []models.Challenge
	if v := args.Get(0); v != nil {
		items = v.([]models.Challenge)
	}
	return items, args.Error(1)
}

func (m *mockChallenges) GetByID(id uuid.UUID) (*models.Challenge, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.Challenge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChallenges) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChallenges) Create(challenge *models.Challenge) error {
	return m.Called(challenge).Error(0)
}

func (m *mockChallenges) Update(id uuid.UUID, updates map[string]interface{}) (*models.Challenge, error) {
	args := m.Called(id, updates)
	if v := args.Get(0); v != nil {
		return v.(*models.Challenge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChallenges) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

type mockLeaderboard struct{ mock.Mock }

func (m *mockLeaderboard) Upsert(userID uuid.UUID, xp, level int) (*models.LeaderboardEntry, error) {
	args := m.Called(userID, xp, level)
	if v := args.Get(0); v != nil {
		return v.(*models.LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeaderboard) Top(page, limit int) ([]models.LeaderboardEntry, int64, error) {
	args := m.Called(page, limit)
	var items []models.LeaderboardEntry
	if v := args.Get(0); v != nil {
		items = v.([]models.LeaderboardEntry)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockLeaderboard) Position(userID uuid.UUID) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByID(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) AddXP(id uuid.UUID, delta int) (*models.User, error) {
	args := m.Called(id, delta)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) TopByXP(limit int) ([]models.User, error) {
	args := m.Called(limit)
	if v := args.Get(0); v != nil {
		return v.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}
