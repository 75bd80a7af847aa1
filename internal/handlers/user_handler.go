package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/services"
)

// UserHandler serves the per-user content and feedback surface.
type UserHandler struct {
	contents ContentStore
	feedback FeedbackStore
}

func NewUserHandler(contents ContentStore, feedback FeedbackStore) *UserHandler {
	return &UserHandler{contents: contents, feedback: feedback}
}

// History handles GET /user/history. Anonymous callers have no history
// and receive an empty page.
func (h *UserHandler) History(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	userID := callerUUID(c)
	if userID == nil {
		return c.JSON(fiber.Map{
			"history":    []dto.HistoryItem{},
			"pagination": dto.NewPagination(page, limit, 0),
		})
	}

	items, total, err := h.contents.ListByUser(*userID, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch history", "")
	}

	history := make([]dto.HistoryItem, 0, len(items))
	for i := range items {
		item := &items[i]
		history = append(history, dto.HistoryItem{
			ID:               item.ContentID,
			Type:             item.Type,
			CredibilityScore: item.CredibilityScore,
			RiskLevel:        item.RiskLevel,
			Summary:          item.Summary,
			CreatedAt:        item.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"history":    history,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// GetResult handles GET /user/results/:id, resolving a Content row by
// its external id.
func (h *UserHandler) GetResult(c *fiber.Ctx) error {
	content, err := h.contents.GetByContentID(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			return fail(c, fiber.StatusNotFound, "Content not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch result", "")
	}
	return c.JSON(dto.NewAnalysisResponse(content))
}

// DeleteContent handles DELETE /user/content/:id. Owner-only; anonymous
// content cannot be deleted through the API.
func (h *UserHandler) DeleteContent(c *fiber.Ctx) error {
	userID := callerUUID(c)
	if userID == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", "a valid user token is required")
	}

	err := h.contents.Delete(c.Params("id"), *userID)
	switch {
	case errors.Is(err, services.ErrContentNotFound):
		return fail(c, fiber.StatusNotFound, "Content not found", "")
	case errors.Is(err, services.ErrNotContentOwner):
		return fail(c, fiber.StatusForbidden, "Forbidden", "content belongs to another user")
	case err != nil:
		return fail(c, fiber.StatusInternalServerError, "Failed to delete content", "")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Content deleted"})
}

// ListContentFeedback handles GET /user/content/:id/feedback: the
// feedback page for one content item plus its vote tallies.
func (h *UserHandler) ListContentFeedback(c *fiber.Ctx) error {
	content, err := h.contents.GetByContentID(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			return fail(c, fiber.StatusNotFound, "Content not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch feedback", "")
	}

	page, limit := pageParams(c)
	items, total, err := h.feedback.ListByContent(content.ID, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch feedback", "")
	}
	agree, disagree, err := h.feedback.Tallies(content.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch feedback", "")
	}

	return c.JSON(fiber.Map{
		"feedback":       items,
		"agree_count":    agree,
		"disagree_count": disagree,
		"pagination":     dto.NewPagination(page, limit, total),
	})
}

// UpdateFeedback handles PUT /user/feedback/:feedbackId (owner only).
func (h *UserHandler) UpdateFeedback(c *fiber.Ctx) error {
	userID := callerUUID(c)
	if userID == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", "a valid user token is required")
	}
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "feedbackId must be a valid UUID")
	}

	var req dto.UpdateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if req.Feedback != models.FeedbackAgree && req.Feedback != models.FeedbackDisagree {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "feedback must be \"agree\" or \"disagree\"")
	}

	fb, err := h.feedback.Update(feedbackID, *userID, req.Feedback, req.Notes)
	switch {
	case errors.Is(err, services.ErrFeedbackNotFound):
		return fail(c, fiber.StatusNotFound, "Feedback not found", "")
	case errors.Is(err, services.ErrNotFeedbackOwner):
		return fail(c, fiber.StatusForbidden, "Forbidden", "feedback belongs to another user")
	case err != nil:
		return fail(c, fiber.StatusInternalServerError, "Failed to update feedback", "")
	}

	return c.JSON(fiber.Map{"success": true, "feedback": fb})
}

// DeleteFeedback handles DELETE /user/feedback/:feedbackId (owner only).
func (h *UserHandler) DeleteFeedback(c *fiber.Ctx) error {
	userID := callerUUID(c)
	if userID == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", "a valid user token is required")
	}
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "feedbackId must be a valid UUID")
	}

	err = h.feedback.Delete(feedbackID, *userID)
	switch {
	case errors.Is(err, services.ErrFeedbackNotFound):
		return fail(c, fiber.StatusNotFound, "Feedback not found", "")
	case errors.Is(err, services.ErrNotFeedbackOwner):
		return fail(c, fiber.StatusForbidden, "Forbidden", "feedback belongs to another user")
	case err != nil:
		return fail(c, fiber.StatusInternalServerError, "Failed to delete feedback", "")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Feedback deleted"})
}
