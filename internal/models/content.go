package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Content is one analyzed item. Rows are immutable after creation
// except for owner-initiated deletion.
type Content struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ContentID           string         `gorm:"size:64;not null;uniqueIndex" json:"id"`
	Type                string         `gorm:"size:10;not null;index" json:"type"`
	RawInput            datatypes.JSON `gorm:"type:jsonb;not null" json:"-"`
	CredibilityScore    int            `gorm:"not null;index" json:"credibility_score"`
	RiskLevel           string         `gorm:"size:10;not null;index" json:"risk_level"`
	TextAnalysisScore   *float64       `json:"text_analysis_score"`
	VisualAnalysisScore *float64       `json:"visual_analysis_score"`
	SourceVerified      bool           `gorm:"default:false" json:"source_verified"`
	FactCheckMatch      bool           `gorm:"default:false" json:"fact_check_match"`
	Reasons             datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"reasons"`
	SupportingEvidence  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"supporting_evidence"`
	Summary             string         `gorm:"type:text" json:"summary"`
	UserID              *uuid.UUID     `gorm:"type:uuid;index" json:"-"`
	User                *User          `gorm:"foreignKey:UserID" json:"-"`
	Metadata            datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"-"`
}

const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeURL   = "url"
	ContentTypeMulti = "multi"
)
