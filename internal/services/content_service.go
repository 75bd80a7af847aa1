package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound  = errors.New("content not found")
	ErrDuplicateContent = errors.New("content with this id already exists")
	ErrNotContentOwner  = errors.New("content belongs to another user")
)

type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// SaveAnalysisResult persists a new analysis. A missing external id is
// generated; a colliding one surfaces as ErrDuplicateContent.
func (s *ContentService) SaveAnalysisResult(content *models.Content) error {
	if content.ContentID == "" {
		content.ContentID = uuid.NewString()
	}
	if err := s.db.Create(content).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateContent
		}
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	return nil
}

// GetByContentID resolves a Content row by its external UUID.
func (s *ContentService) GetByContentID(contentID string) (*models.Content, error) {
	var content models.Content
	if err := s.db.Preload("User").Where("content_id = ?", contentID).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (s *ContentService) ListByUser(userID uuid.UUID, page, limit int) ([]models.Content, int64, error) {
	var items []models.Content
	var total int64

	query := s.db.Model(&models.Content{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// Delete removes content owned by userID. Anonymous content and content
// owned by someone else cannot be deleted through this path.
func (s *ContentService) Delete(contentID string, userID uuid.UUID) error {
	content, err := s.GetByContentID(contentID)
	if err != nil {
		return err
	}
	if content.UserID != nil && *content.UserID != userID {
		return ErrNotContentOwner
	}
	return s.db.Delete(&models.Content{}, "id = ?", content.ID).Error
}

func (s *ContentService) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.Content{}).Count(&total).Error
	return total, err
}

// CountByRiskLevel aggregates analyses per risk tier.
func (s *ContentService) CountByRiskLevel() (map[string]int64, error) {
	rows := []struct {
		RiskLevel string
		Count     int64
	}{}
	err := s.db.Model(&models.Content{}).
		Select("risk_level, count(*) as count").
		Group("risk_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{"low": 0, "moderate": 0, "high": 0}
	for _, r := range rows {
		counts[r.RiskLevel] = r.Count
	}
	return counts, nil
}

// DailyActivity counts analyses per day over the trailing window.
func (s *ContentService) DailyActivity(days int) (map[string]int64, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows := []struct {
		Day   time.Time
		Count int64
	}{}
	err := s.db.Model(&models.Content{}).
		Select("date_trunc('day', created_at) as day, count(*) as count").
		Where("created_at >= ?", since).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	activity := make(map[string]int64, len(rows))
	for _, r := range rows {
		activity[r.Day.Format("2006-01-02")] = r.Count
	}
	return activity, nil
}
