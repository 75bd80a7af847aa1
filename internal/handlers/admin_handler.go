package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/services"
)

// AdminHandler serves the moderation and dashboard surface.
type AdminHandler struct {
	alerts     AlertStore
	contents   ContentStore
	users      UserStore
	challenges ChallengeStore
}

func NewAdminHandler(alerts AlertStore, contents ContentStore, users UserStore, challenges ChallengeStore) *AdminHandler {
	return &AdminHandler{alerts: alerts, contents: contents, users: users, challenges: challenges}
}

// ListAlerts handles GET /admin/alerts. The status filter defaults to
// pending; "all" disables it.
func (h *AdminHandler) ListAlerts(c *fiber.Ctx) error {
	status := c.Query("status", models.AlertStatusPending)
	switch status {
	case models.AlertStatusPending, models.AlertStatusAllowed, models.AlertStatusRemoved, "all":
	default:
		return fail(c, fiber.StatusBadRequest, "Validation failed", "status must be pending, allowed, removed or all")
	}

	page, limit := pageParams(c)
	alerts, total, err := h.alerts.List(status, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch alerts", "")
	}

	views := make([]dto.AlertView, 0, len(alerts))
	for i := range alerts {
		views = append(views, dto.NewAlertView(&alerts[i]))
	}
	return c.JSON(fiber.Map{
		"alerts":     views,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// ActionAlert handles POST /admin/action: allow or remove a pending
// alert, stamping the acting admin.
func (h *AdminHandler) ActionAlert(c *fiber.Ctx) error {
	var req dto.AlertActionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	var status string
	switch req.Action {
	case "allow":
		status = models.AlertStatusAllowed
	case "remove":
		status = models.AlertStatusRemoved
	default:
		return fail(c, fiber.StatusBadRequest, "Validation failed", "action must be \"allow\" or \"remove\"")
	}
	if len(req.Notes) > 1000 {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "notes must be at most 1000 characters")
	}

	alertID, err := uuid.Parse(req.AlertID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "alertId must be a valid UUID")
	}

	alert, err := h.alerts.Resolve(alertID, status, callerUUID(c), req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return fail(c, fiber.StatusNotFound, "Alert not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to action alert", "")
	}

	return c.JSON(fiber.Map{"success": true, "alert": dto.NewAlertView(alert)})
}

// CreateChallenge handles POST /admin/challenges.
func (h *AdminHandler) CreateChallenge(c *fiber.Ctx) error {
	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if details := validateChallenge(&req); details != "" {
		return fail(c, fiber.StatusBadRequest, "Validation failed", details)
	}

	challenge := &models.Challenge{
		Title:         req.Title,
		MediaType:     req.MediaType,
		Prompt:        req.Prompt,
		ImageURL:      req.ImageURL,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Difficulty:    req.Difficulty,
	}
	if err := h.challenges.Create(challenge); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create challenge", "")
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// UpdateChallenge handles PUT /admin/challenges/:id. Only the fields
// present in the body are touched.
func (h *AdminHandler) UpdateChallenge(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "id must be a valid UUID")
	}

	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.MediaType != "" {
		if req.MediaType != "text" && req.MediaType != "image" {
			return fail(c, fiber.StatusBadRequest, "Validation failed", "media_type must be \"text\" or \"image\"")
		}
		updates["media_type"] = req.MediaType
	}
	if req.Prompt != "" {
		updates["prompt"] = req.Prompt
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.CorrectAnswer != "" {
		if req.CorrectAnswer != models.AnswerReal && req.CorrectAnswer != models.AnswerFake {
			return fail(c, fiber.StatusBadRequest, "Validation failed", "correct_answer must be \"real\" or \"fake\"")
		}
		updates["correct_answer"] = req.CorrectAnswer
	}
	if req.Explanation != "" {
		updates["explanation"] = req.Explanation
	}
	if req.Difficulty != 0 {
		if req.Difficulty < 1 || req.Difficulty > 5 {
			return fail(c, fiber.StatusBadRequest, "Validation failed", "difficulty must be between 1 and 5")
		}
		updates["difficulty"] = req.Difficulty
	}
	if len(updates) == 0 {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "no fields to update")
	}

	challenge, err := h.challenges.Update(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			return fail(c, fiber.StatusNotFound, "Challenge not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update challenge", "")
	}
	return c.JSON(challenge)
}

// DeleteChallenge handles DELETE /admin/challenges/:id.
func (h *AdminHandler) DeleteChallenge(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "id must be a valid UUID")
	}
	if err := h.challenges.Delete(id); err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			return fail(c, fiber.StatusNotFound, "Challenge not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to delete challenge", "")
	}
	return c.JSON(fiber.Map{"success": true})
}

func validateChallenge(req *dto.CreateChallengeRequest) string {
	switch {
	case req.Title == "":
		return "title is required"
	case req.MediaType != "text" && req.MediaType != "image":
		return "media_type must be \"text\" or \"image\""
	case req.Prompt == "":
		return "prompt is required"
	case req.CorrectAnswer != models.AnswerReal && req.CorrectAnswer != models.AnswerFake:
		return "correct_answer must be \"real\" or \"fake\""
	case req.Explanation == "":
		return "explanation is required"
	case req.Difficulty < 1 || req.Difficulty > 5:
		return "difficulty must be between 1 and 5"
	}
	return ""
}

// Stats handles GET /admin/stats: the dashboard aggregates, computed
// with SQL aggregation instead of row scans.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	total, err := h.contents.Count()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats", "")
	}
	riskLevels, err := h.contents.CountByRiskLevel()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats", "")
	}
	activity, err := h.contents.DailyActivity(7)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats", "")
	}
	top, err := h.users.TopByXP(5)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats", "")
	}

	topUsers := make([]dto.TopUser, 0, len(top))
	for i := range top {
		user := &top[i]
		topUsers = append(topUsers, dto.TopUser{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
			XP:    user.XP,
			Level: user.Level(),
		})
	}

	return c.JSON(dto.DashboardStats{
		TotalAnalyses: total,
		RiskLevels:    riskLevels,
		DailyActivity: activity,
		TopUsers:      topUsers,
	})
}
