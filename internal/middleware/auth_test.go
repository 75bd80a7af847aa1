package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truthlens/truthlens-backend/internal/config"
)

func authTestApp(cfg *config.Config, required bool) *fiber.App {
	app := fiber.New()
	guard := OptionalAuth(cfg)
	if required {
		guard = RequireAuth(cfg)
	}
	app.Get("/whoami", guard, func(c *fiber.Ctx) error {
		principal := PrincipalFrom(c)
		if principal == nil {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"user_id": principal.UserID, "role": principal.Role})
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, authorization string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

// fakeJWT builds an unsigned three-part token with the given claims.
func fakeJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, true)

	resp, body := whoami(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "Unauthorized", errBody["message"])
}

func TestRequireAuthRejectsNonBearer(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, true)

	resp, _ := whoami(t, app, "Basic dXNlcjpwYXNz")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthTestTokenShape(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, true)

	resp, body := whoami(t, app, "Bearer test-token-user-42")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-42", body["user_id"])
	assert.Equal(t, "user", body["role"])
}

func TestRequireAuthJWTShape(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, true)

	token := fakeJWT(t, map[string]any{"userId": "abc-123", "role": "admin"})
	resp, body := whoami(t, app, "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc-123", body["user_id"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireAuthJWTSubFallback(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, true)

	token := fakeJWT(t, map[string]any{"sub": "sub-7"})
	resp, body := whoami(t, app, "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "sub-7", body["user_id"])
	assert.Equal(t, "user", body["role"])
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, true)

	resp, _ := whoami(t, app, "Bearer not-a-token")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthDisabledPassesThrough(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: false}, true)

	resp, body := whoami(t, app, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["anonymous"])
}

func TestOptionalAuthAnonymous(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, false)

	resp, body := whoami(t, app, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["anonymous"])
}

func TestOptionalAuthWithToken(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, false)

	resp, body := whoami(t, app, "Bearer test-token-opt-1")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "opt-1", body["user_id"])
}

func TestOptionalAuthBadTokenProceedsAnonymously(t *testing.T) {
	app := authTestApp(&config.Config{UseMockAuth: true}, false)

	resp, body := whoami(t, app, "Bearer ???")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["anonymous"])
}
