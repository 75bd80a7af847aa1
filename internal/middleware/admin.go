package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired allows callers whose token carries the admin role, or
// whose user record is an admin. Must run after RequireAuth.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := PrincipalFrom(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError(
				fiber.StatusUnauthorized, "Unauthorized", "Authentication required"))
		}

		if principal.Role == "admin" {
			return c.Next()
		}

		if userID, err := uuid.Parse(principal.UserID); err == nil {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil && user.Role == "admin" {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.NewError(
			fiber.StatusForbidden, "Forbidden", "Admin access required"))
	}
}
