package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/dto"
)

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID string
	Role   string
}

const principalKey = "principal"

// PrincipalFrom returns the caller set by the auth middleware, or nil
// for anonymous requests.
func PrincipalFrom(c *fiber.Ctx) *Principal {
	if p, ok := c.Locals(principalKey).(*Principal); ok {
		return p
	}
	return nil
}

// RequireAuth parses the bearer token and fails closed with 401 when it
// is missing or malformed.
//
// This is mock authentication: tokens are decoded, never verified.
// Production deployments must replace it with signed-token validation.
func RequireAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.UseMockAuth {
			// Mock auth disabled and no real auth configured yet.
			return c.Next()
		}

		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError(
				fiber.StatusUnauthorized, "Unauthorized",
				"Missing or invalid Authorization header. Use: Authorization: Bearer <token>"))
		}

		principal, ok := decodeToken(token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError(
				fiber.StatusUnauthorized, "Unauthorized", "Invalid token format"))
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// OptionalAuth sets the principal when a valid token is present and
// proceeds anonymously otherwise.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		if principal, ok := decodeToken(token); ok {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return header[len("Bearer "):], true
}

const testTokenPrefix = "test-token-"

// decodeToken supports two shapes: a literal "test-token-<userId>"
// string, and a three-part dot-separated token whose middle segment is
// base64 JSON with userId/sub and role claims.
func decodeToken(token string) (*Principal, bool) {
	if strings.HasPrefix(token, testTokenPrefix) {
		return &Principal{
			UserID: strings.TrimPrefix(token, testTokenPrefix),
			Role:   "user",
		}, true
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		userID, _ = claims["sub"].(string)
	}
	if userID == "" {
		userID = "unknown"
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	return &Principal{UserID: userID, Role: role}, true
}
