package dto

import (
	"time"

	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/datatypes"
)

type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

type FeedbackRequest struct {
	ContentID string `json:"contentId"`
	UserID    string `json:"userId"`
	Feedback  string `json:"feedback"`
	Notes     string `json:"notes"`
}

type FeedbackResponse struct {
	Success       bool   `json:"success"`
	FeedbackID    string `json:"feedback_id"`
	FeedbackCount int64  `json:"feedback_count"`
	AgreeCount    int64  `json:"agree_count"`
	DisagreeCount int64  `json:"disagree_count"`
}

type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback"`
	Notes    string `json:"notes"`
}

// AnalysisResponse is the canonical view of a persisted Content row.
type AnalysisResponse struct {
	ID                  string         `json:"id"`
	Type                string         `json:"type"`
	CredibilityScore    int            `json:"credibility_score"`
	RiskLevel           string         `json:"risk_level"`
	TextAnalysisScore   *float64       `json:"text_analysis_score"`
	VisualAnalysisScore *float64       `json:"visual_analysis_score"`
	SourceVerified      bool           `json:"source_verified"`
	FactCheckMatch      bool           `json:"fact_check_match"`
	Reasons             datatypes.JSON `json:"reasons"`
	SupportingEvidence  datatypes.JSON `json:"supporting_evidence"`
	Summary             string         `json:"summary"`
	Metadata            datatypes.JSON `json:"metadata"`
	CreatedAt           time.Time      `json:"created_at"`
	User                *UserRef       `json:"user,omitempty"`
}

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func NewAnalysisResponse(c *models.Content) AnalysisResponse {
	resp := AnalysisResponse{
		ID:                  c.ContentID,
		Type:                c.Type,
		CredibilityScore:    c.CredibilityScore,
		RiskLevel:           c.RiskLevel,
		TextAnalysisScore:   c.TextAnalysisScore,
		VisualAnalysisScore: c.VisualAnalysisScore,
		SourceVerified:      c.SourceVerified,
		FactCheckMatch:      c.FactCheckMatch,
		Reasons:             c.Reasons,
		SupportingEvidence:  c.SupportingEvidence,
		Summary:             c.Summary,
		Metadata:            c.Metadata,
		CreatedAt:           c.CreatedAt,
	}
	if c.User != nil {
		resp.User = &UserRef{ID: c.User.ID.String(), Name: c.User.Name, Email: c.User.Email}
	}
	return resp
}

// HistoryItem is the condensed per-row view for the history listing.
type HistoryItem struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	CredibilityScore int       `json:"credibility_score"`
	RiskLevel        string    `json:"risk_level"`
	Summary          string    `json:"summary"`
	CreatedAt        time.Time `json:"created_at"`
}
