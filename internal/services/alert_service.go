package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// CreateForHighRisk flags content for moderation. Creation is
// idempotent per content: an existing pending alert is returned as-is.
// The check-then-create is best effort, not transactional; a concurrent
// race can still produce duplicates, which moderation tolerates.
func (s *AlertService) CreateForHighRisk(contentID uuid.UUID, flaggedBy *uuid.UUID, riskLevel string) (*models.Alert, error) {
	var existing models.Alert
	err := s.db.Where("content_id = ? AND status = ?", contentID, models.AlertStatusPending).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	alert := models.Alert{
		ContentID: contentID,
		RiskLevel: riskLevel,
		FlaggedBy: flaggedBy,
		Status:    models.AlertStatusPending,
	}
	if err := s.db.Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return &alert, nil
}

// List returns alerts newest first. An empty status or "all" disables
// the status filter.
func (s *AlertService) List(status string, page, limit int) ([]models.Alert, int64, error) {
	var alerts []models.Alert
	var total int64

	query := s.db.Model(&models.Alert{})
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Content").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&alerts).Error
	return alerts, total, err
}

// Resolve moves an alert to its terminal status and stamps the acting
// admin.
func (s *AlertService) Resolve(alertID uuid.UUID, status string, actionedBy *uuid.UUID, notes string) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.Preload("Content").First(&alert, "id = ?", alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	alert.Status = status
	alert.ActionedBy = actionedBy
	alert.ActionedAt = &now
	alert.Notes = notes
	if err := s.db.Save(&alert).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve alert: %w", err)
	}
	return &alert, nil
}
