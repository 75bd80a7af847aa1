package dto

import (
	"time"

	"github.com/truthlens/truthlens-backend/internal/models"
)

type AlertActionRequest struct {
	AlertID string `json:"alertId"`
	Action  string `json:"action"`
	Notes   string `json:"notes"`
}

type AlertView struct {
	ID             string     `json:"id"`
	ContentID      string     `json:"content_id"`
	ContentType    string     `json:"content_type,omitempty"`
	ContentPreview string     `json:"content_preview,omitempty"`
	RiskLevel      string     `json:"risk_level"`
	FlaggedBy      string     `json:"flagged_by,omitempty"`
	ReportedAt     time.Time  `json:"reported_at"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes"`
	ActionedBy     string     `json:"actioned_by,omitempty"`
	ActionedAt     *time.Time `json:"actioned_at,omitempty"`
}

func NewAlertView(a *models.Alert) AlertView {
	view := AlertView{
		ID:         a.ID.String(),
		RiskLevel:  a.RiskLevel,
		ReportedAt: a.CreatedAt,
		Status:     a.Status,
		Notes:      a.Notes,
		ActionedAt: a.ActionedAt,
	}
	if a.Content != nil {
		view.ContentID = a.Content.ContentID
		view.ContentType = a.Content.Type
		preview := a.Content.Summary
		if len(preview) > 100 {
			preview = preview[:100]
		}
		view.ContentPreview = preview
	}
	if a.FlaggedBy != nil {
		view.FlaggedBy = a.FlaggedBy.String()
	}
	if a.ActionedBy != nil {
		view.ActionedBy = a.ActionedBy.String()
	}
	return view
}

// DashboardStats are the admin dashboard aggregates.
type DashboardStats struct {
	TotalAnalyses int64            `json:"totalAnalyses"`
	RiskLevels    map[string]int64 `json:"mostCommonRiskLevels"`
	DailyActivity map[string]int64 `json:"dailyActivity"`
	TopUsers      []TopUser        `json:"topUsers"`
}

type TopUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}
