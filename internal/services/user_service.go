package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddXP adjusts a user's cumulative XP, floored at zero, and returns
// the updated record.
func (s *UserService) AddXP(id uuid.UUID, delta int) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.XP += delta
	if user.XP < 0 {
		user.XP = 0
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user xp: %w", err)
	}
	return user, nil
}

// TopByXP returns the highest-XP users for the admin dashboard.
func (s *UserService) TopByXP(limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.Order("xp DESC").Limit(limit).Find(&users).Error
	return users, err
}

// EnsureAdmin creates or promotes the seeded admin account. Idempotent.
func (s *UserService) EnsureAdmin(email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	var user models.User
	err = s.db.Where("email = ? AND auth_provider = ?", email, "local").First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:         "Administrator",
			Email:        email,
			Password:     string(hash),
			Role:         "admin",
			AuthProvider: "local",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		user.Role = "admin"
		user.Password = string(hash)
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to update admin user: %w", err)
		}
	}
	return &user, nil
}
