package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"size:255;not null;uniqueIndex:idx_users_email_provider" json:"email"`
	Password     string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;default:'user';index" json:"role"`
	XP           int            `gorm:"default:0" json:"xp"`
	Badges       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"badges"`
	AuthProvider string         `gorm:"size:50;default:'local'" json:"-"`
	ProviderID   string         `gorm:"size:255;default:'';uniqueIndex:idx_users_email_provider" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Level derives the gamification level from cumulative XP.
func (u *User) Level() int {
	return u.XP/100 + 1
}
