package dto

import (
	"time"

	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/datatypes"
)

// ChallengeView is a challenge as exposed to players. The correct
// answer is deliberately absent.
type ChallengeView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	MediaType   string    `json:"media_type"`
	Prompt      string    `json:"prompt"`
	ImageURL    string    `json:"image_url,omitempty"`
	Explanation string    `json:"explanation"`
	Difficulty  int       `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewChallengeView(c *models.Challenge) ChallengeView {
	return ChallengeView{
		ID:          c.ID.String(),
		Title:       c.Title,
		MediaType:   c.MediaType,
		Prompt:      c.Prompt,
		ImageURL:    c.ImageURL,
		Explanation: c.Explanation,
		Difficulty:  c.Difficulty,
		CreatedAt:   c.CreatedAt,
	}
}

type AnswerRequest struct {
	ChallengeID string `json:"challengeId"`
	UserID      string `json:"userId"`
	Answer      string `json:"answer"`
}

type UserStats struct {
	TotalXP  int `json:"total_xp"`
	Level    int `json:"level"`
	XPEarned int `json:"xp_earned"`
}

type AnswerResponse struct {
	Correct     bool      `json:"correct"`
	XPEarned    int       `json:"xp_earned"`
	Persisted   bool      `json:"persisted"`
	Explanation string    `json:"explanation"`
	UserStats   UserStats `json:"user_stats"`
}

type LeaderboardRow struct {
	Rank        int            `json:"rank"`
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name"`
	XP          int            `json:"xp"`
	Level       int            `json:"level"`
	Badges      datatypes.JSON `json:"badges"`
	LastUpdated time.Time      `json:"last_updated"`
}

type CreateChallengeRequest struct {
	Title         string `json:"title"`
	MediaType     string `json:"media_type"`
	Prompt        string `json:"prompt"`
	ImageURL      string `json:"image_url"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Difficulty    int    `json:"difficulty"`
}
