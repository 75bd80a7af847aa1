package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a moderation work item created for high-risk content.
// Lifecycle: pending -> allowed | removed (terminal).
type Alert struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContentID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Content    *Content   `gorm:"foreignKey:ContentID" json:"-"`
	RiskLevel  string     `gorm:"size:10;not null;index" json:"risk_level"`
	FlaggedBy  *uuid.UUID `gorm:"type:uuid;index" json:"flagged_by"`
	Status     string     `gorm:"size:10;not null;default:'pending';index:idx_alerts_status_risk" json:"status"`
	Notes      string     `gorm:"size:1000" json:"notes"`
	ActionedBy *uuid.UUID `gorm:"type:uuid" json:"actioned_by"`
	ActionedAt *time.Time `json:"actioned_at"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"-"`
}

const (
	AlertStatusPending = "pending"
	AlertStatusAllowed = "allowed"
	AlertStatusRemoved = "removed"
)
