package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// Upsert sets a user's leaderboard entry to the given XP total and
// level. One row per user.
func (s *LeaderboardService) Upsert(userID uuid.UUID, xp, level int) (*models.LeaderboardEntry, error) {
	entry := models.LeaderboardEntry{
		UserID:      userID,
		XP:          xp,
		Level:       level,
		LastUpdated: time.Now().UTC(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"xp", "level", "last_updated"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Top returns a leaderboard page sorted by XP descending.
func (s *LeaderboardService) Top(page, limit int) ([]models.LeaderboardEntry, int64, error) {
	var entries []models.LeaderboardEntry
	var total int64

	if err := s.db.Model(&models.LeaderboardEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Preload("User").
		Order("xp DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// Position returns a user's 1-based rank, or 0 when the user has no
// entry.
func (s *LeaderboardService) Position(userID uuid.UUID) (int64, error) {
	var entry models.LeaderboardEntry
	if err := s.db.First(&entry, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}

	var ahead int64
	if err := s.db.Model(&models.LeaderboardEntry{}).Where("xp > ?", entry.XP).Count(&ahead).Error; err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

func (s *LeaderboardService) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.LeaderboardEntry{}).Count(&total).Error
	return total, err
}
