package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this content")
	ErrNotFeedbackOwner  = errors.New("feedback belongs to another user")
)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Create records a vote. The (user, content) unique index makes a
// second vote surface as ErrDuplicateFeedback, never a silent overwrite.
func (s *FeedbackService) Create(userID, contentID uuid.UUID, value, notes string) (*models.Feedback, error) {
	fb := models.Feedback{
		UserID:    userID,
		ContentID: contentID,
		Feedback:  value,
		Notes:     notes,
	}
	if err := s.db.Create(&fb).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFeedback
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &fb, nil
}

// Tallies recounts agree/disagree votes for a content row. Counting is
// preferred over incremental counters so the numbers cannot drift.
func (s *FeedbackService) Tallies(contentID uuid.UUID) (agree, disagree int64, err error) {
	if err = s.db.Model(&models.Feedback{}).
		Where("content_id = ? AND feedback = ?", contentID, models.FeedbackAgree).
		Count(&agree).Error; err != nil {
		return 0, 0, err
	}
	err = s.db.Model(&models.Feedback{}).
		Where("content_id = ? AND feedback = ?", contentID, models.FeedbackDisagree).
		Count(&disagree).Error
	return agree, disagree, err
}

func (s *FeedbackService) GetByID(id uuid.UUID) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.db.First(&fb, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &fb, nil
}

func (s *FeedbackService) ListByContent(contentID uuid.UUID, page, limit int) ([]models.Feedback, int64, error) {
	var items []models.Feedback
	var total int64

	query := s.db.Model(&models.Feedback{}).Where("content_id = ?", contentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// Update modifies a vote's value and notes. Ownership is verified here
// so handlers cannot skip the check.
func (s *FeedbackService) Update(id, userID uuid.UUID, value, notes string) (*models.Feedback, error) {
	fb, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fb.UserID != userID {
		return nil, ErrNotFeedbackOwner
	}

	fb.Feedback = value
	if notes != "" {
		fb.Notes = notes
	}
	if err := s.db.Save(fb).Error; err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}
	return fb, nil
}

func (s *FeedbackService) Delete(id, userID uuid.UUID) error {
	fb, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if fb.UserID != userID {
		return ErrNotFeedbackOwner
	}
	return s.db.Delete(fb).Error
}
