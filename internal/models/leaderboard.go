package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry aggregates a user's total XP. One row per user,
// upserted by the game answer flow.
type LeaderboardEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	XP          int       `gorm:"default:0;index" json:"xp"`
	Level       int       `gorm:"default:1" json:"level"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// LevelForXP computes the level for a cumulative XP total.
func LevelForXP(xp int) int {
	return xp/100 + 1
}
