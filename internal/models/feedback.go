package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one user's agree/disagree vote on one Content item.
// The composite unique index enforces at most one vote per (user, content).
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_user_content" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_user_content;index" json:"-"`
	Content   *Content  `gorm:"foreignKey:ContentID" json:"-"`
	Feedback  string    `gorm:"size:10;not null" json:"feedback"`
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	FeedbackAgree    = "agree"
	FeedbackDisagree = "disagree"
)
