package models

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a single trivia item in the "real or fake" game.
// CorrectAnswer is never serialized; game responses use PublicView.
type Challenge struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	MediaType     string    `gorm:"size:10;not null" json:"media_type"`
	Prompt        string    `gorm:"type:text;not null" json:"prompt"`
	ImageURL      string    `gorm:"size:500" json:"image_url,omitempty"`
	CorrectAnswer string    `gorm:"size:10;not null" json:"-"`
	Explanation   string    `gorm:"type:text;not null" json:"explanation"`
	Difficulty    int       `gorm:"not null;default:1;index" json:"difficulty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

const (
	AnswerReal = "real"
	AnswerFake = "fake"
)
