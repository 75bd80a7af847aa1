package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/gorm"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type ChallengeService struct {
	db *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

// Random samples n challenges, optionally filtered by difficulty.
func (s *ChallengeService) Random(n, difficulty int) ([]models.Challenge, error) {
	var challenges []models.Challenge
	query := s.db.Model(&models.Challenge{})
	if difficulty > 0 {
		query = query.Where("difficulty = ?", difficulty)
	}
	err := query.Order("random()").Limit(n).Find(&challenges).Error
	return challenges, err
}

func (s *ChallengeService) GetByID(id uuid.UUID) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.db.First(&challenge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (s *ChallengeService) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.Challenge{}).Count(&total).Error
	return total, err
}

func (s *ChallengeService) Create(challenge *models.Challenge) error {
	return s.db.Create(challenge).Error
}

func (s *ChallengeService) Update(id uuid.UUID, updates map[string]interface{}) (*models.Challenge, error) {
	result := s.db.Model(&models.Challenge{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrChallengeNotFound
	}
	return s.GetByID(id)
}

func (s *ChallengeService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Challenge{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// ExistsByTitle is used by seeding to stay idempotent.
func (s *ChallengeService) ExistsByTitle(title string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Challenge{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}
