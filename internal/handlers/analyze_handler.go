package handlers

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/clients"
	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/scoring"
	"github.com/truthlens/truthlens-backend/internal/services"
)

// AnalyzeHandler orchestrates the analysis flows: collaborator fan-in,
// scoring, persistence and high-risk alerting.
type AnalyzeHandler struct {
	cfg      *config.Config
	ml       MLAnalyzer
	search   ReverseSearcher
	facts    FactChecker
	pages    PageFetcher
	contents ContentStore
	alerts   AlertStore
	feedback FeedbackStore
}

func NewAnalyzeHandler(cfg *config.Config, ml MLAnalyzer, search ReverseSearcher, facts FactChecker, pages PageFetcher, contents ContentStore, alerts AlertStore, feedback FeedbackStore) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:      cfg,
		ml:       ml,
		search:   search,
		facts:    facts,
		pages:    pages,
		contents: contents,
		alerts:   alerts,
		feedback: feedback,
	}
}

// AnalyzeText handles POST /analyze/text.
func (h *AnalyzeHandler) AnalyzeText(c *fiber.Ctx) error {
	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "text is required")
	}

	ml := h.ml.AnalyzeText(c.UserContext(), text)
	matches := h.search.SearchText(text)
	factCheck := h.facts.CheckText(text)

	content := h.buildContent(c, models.ContentTypeText, ml, matches, factCheck, false)
	content.RawInput = toJSON(fiber.Map{"text": text})
	content.Metadata = toJSON(fiber.Map{"text_length": len(text)})

	return h.persistAndRespond(c, content)
}

// AnalyzeImage handles POST /analyze/image (multipart field "image").
// The uploaded file is staged on disk for the ML call and removed
// afterwards unless upload persistence is enabled.
func (h *AnalyzeHandler) AnalyzeImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "image file is required")
	}
	if file.Size > h.cfg.MaxFileSize {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "image exceeds the maximum allowed size")
	}

	if err := os.MkdirAll(h.cfg.UploadsDir, 0o755); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to store upload", "")
	}
	imagePath := filepath.Join(h.cfg.UploadsDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveFile(file, imagePath); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to store upload", "")
	}
	if !h.cfg.PersistUploads {
		defer func() {
			if err := os.Remove(imagePath); err != nil {
				slog.Warn("failed to remove uploaded image", "path", imagePath, "error", err)
			}
		}()
	}

	ml := h.ml.AnalyzeImage(c.UserContext(), imagePath)
	matches := h.search.SearchImage(imagePath)

	ocrText := ""
	if ml.OCRText != nil {
		ocrText = *ml.OCRText
	}
	factCheck := h.facts.CheckImage(imagePath, ocrText)

	content := h.buildContent(c, models.ContentTypeImage, ml, matches, factCheck, true)
	content.RawInput = toJSON(fiber.Map{"filename": file.Filename, "size": file.Size})
	content.Metadata = toJSON(fiber.Map{
		"filename":  file.Filename,
		"size":      file.Size,
		"persisted": h.cfg.PersistUploads,
	})

	return h.persistAndRespond(c, content)
}

// AnalyzeURL handles POST /analyze/url: fetch the page, extract its
// metadata and run a combined text analysis over it.
func (h *AnalyzeHandler) AnalyzeURL(c *fiber.Ctx) error {
	var req dto.AnalyzeURLRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "url is required")
	}

	meta, err := h.pages.Fetch(c.UserContext(), rawURL)
	if err != nil {
		var fetchErr *clients.FetchError
		if errors.As(err, &fetchErr) {
			return fail(c, fiber.StatusBadRequest, "Failed to fetch URL", fetchErr.Error())
		}
		return fail(c, fiber.StatusBadRequest, "Failed to fetch URL", "")
	}

	combined := strings.TrimSpace(meta.Title + "\n" + meta.Description + "\n" + meta.TextSnippet)

	ml := h.ml.AnalyzeMulti(c.UserContext(), clients.MultiPayload{
		Text:    combined,
		URLMeta: meta.Map(),
	})
	matches := h.search.SearchText(combined)
	factCheck := h.facts.CheckText(combined)

	content := h.buildContent(c, models.ContentTypeURL, ml, matches, factCheck, false)
	content.RawInput = toJSON(fiber.Map{"url": rawURL})
	content.Metadata = toJSON(meta.Map())

	return h.persistAndRespond(c, content)
}

// SubmitFeedback handles POST /analyze/feedback. One vote per
// (user, content); a second vote is a conflict, never an overwrite.
func (h *AnalyzeHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if req.Feedback != models.FeedbackAgree && req.Feedback != models.FeedbackDisagree {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "feedback must be \"agree\" or \"disagree\"")
	}
	if len(req.Notes) > 500 {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "notes must be at most 500 characters")
	}

	userID := callerUUID(c)
	if userID == nil && req.UserID != "" {
		if parsed, err := uuid.Parse(req.UserID); err == nil {
			userID = &parsed
		}
	}
	if userID == nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "a valid userId is required")
	}

	content, err := h.contents.GetByContentID(req.ContentID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			return fail(c, fiber.StatusNotFound, "Content not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to submit feedback", "")
	}

	fb, err := h.feedback.Create(*userID, content.ID, req.Feedback, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateFeedback) {
			return fail(c, fiber.StatusConflict, "Feedback already submitted", "feedback for this content already exists")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to submit feedback", "")
	}

	agree, disagree, err := h.feedback.Tallies(content.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to submit feedback", "")
	}

	return c.JSON(dto.FeedbackResponse{
		Success:       true,
		FeedbackID:    fb.ID.String(),
		FeedbackCount: agree + disagree,
		AgreeCount:    agree,
		DisagreeCount: disagree,
	})
}

// buildContent runs the scoring engine over the collaborator outputs
// and assembles the Content row.
func (h *AnalyzeHandler) buildContent(c *fiber.Ctx, contentType string, ml *clients.MLResult, matches []scoring.SearchMatch, factCheck *scoring.FactCheck, isImage bool) *models.Content {
	signals := ml.Signals()
	score := scoring.Score(signals, matches, factCheck, isImage)

	content := &models.Content{
		ContentID:          uuid.NewString(),
		Type:               contentType,
		CredibilityScore:   score,
		RiskLevel:          scoring.Risk(score),
		TextAnalysisScore:  ml.TextAnalysisScore,
		SourceVerified:     len(matches) > 0,
		FactCheckMatch:     factCheck != nil,
		Reasons:            toJSON(scoring.Reasons(signals, matches, factCheck, isImage)),
		SupportingEvidence: toJSON(scoring.Evidence(matches, factCheck)),
		Summary:            ml.Summary,
		UserID:             callerUUID(c),
	}
	if isImage {
		content.VisualAnalysisScore = ml.VisualAnalysisScore
	}
	return content
}

// persistAndRespond saves the analysis and, for high-risk content,
// raises a moderation alert. Alert failures are logged and swallowed;
// the analysis already succeeded from the caller's point of view.
func (h *AnalyzeHandler) persistAndRespond(c *fiber.Ctx, content *models.Content) error {
	if err := h.contents.SaveAnalysisResult(content); err != nil {
		slog.Error("failed to save analysis result", "type", content.Type, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to save analysis result", "")
	}

	if content.RiskLevel == scoring.RiskHigh {
		if _, err := h.alerts.CreateForHighRisk(content.ID, content.UserID, content.RiskLevel); err != nil {
			slog.Error("failed to create high-risk alert", "content_id", content.ContentID, "error", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewAnalysisResponse(content))
}
