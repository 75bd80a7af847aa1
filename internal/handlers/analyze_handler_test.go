package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/truthlens/truthlens-backend/internal/clients"
	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/middleware"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/scoring"
	"github.com/truthlens/truthlens-backend/internal/services"
)

type analyzeFixture struct {
	ml       *mockML
	search   *mockSearch
	facts    *mockFacts
	pages    *mockPages
	contents *mockContents
	alerts   *mockAlerts
	feedback *mockFeedback
	app      *fiber.App
}

func newAnalyzeFixture() *analyzeFixture {
	f := &analyzeFixture{
		ml:       &mockML{},
		search:   &mockSearch{},
		facts:    &mockFacts{},
		pages:    &mockPages{},
		contents: &mockContents{},
		alerts:   &mockAlerts{},
		feedback: &mockFeedback{},
	}
	cfg := &config.Config{UseMockAuth: true, MaxFileSize: 10 * 1024 * 1024, UploadsDir: "testdata/uploads"}
	h := NewAnalyzeHandler(cfg, f.ml, f.search, f.facts, f.pages, f.contents, f.alerts, f.feedback)

	f.app = fiber.New()
	group := f.app.Group("/api/v1/analyze", middleware.OptionalAuth(cfg))
	group.Post("/text", h.AnalyzeText)
	group.Post("/url", h.AnalyzeURL)
	group.Post("/feedback", h.SubmitFeedback)
	return f
}

func decodeBody(resp *http.Response, out *map[string]any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]any{}
	require.NoError(t, decodeBody(resp, &payload))
	return resp, payload
}

func TestAnalyzeTextMiracleCureCreatesAlert(t *testing.T) {
	f := newAnalyzeFixture()

	f.ml.On("AnalyzeText", mock.Anything, mock.Anything).Return(&clients.MLResult{
		Summary: "Sensational medical claim",
	})
	f.search.On("SearchText", mock.Anything).Return(nil)
	f.facts.On("CheckText", mock.Anything).Return(&scoring.FactCheck{
		Rating: "False",
		Link:   "https://example-factcheck.org/miracle-cures",
	})
	f.contents.On("SaveAnalysisResult", mock.AnythingOfType("*models.Content")).Return(nil)
	f.alerts.On("CreateForHighRisk", mock.Anything, mock.Anything, scoring.RiskHigh).
		Return(&models.Alert{}, nil)

	resp, body := postJSON(t, f.app, "/api/v1/analyze/text",
		map[string]string{"text": "Scientists discover miracle cure for all diseases!"}, nil)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "high", body["risk_level"])
	assert.Equal(t, float64(30), body["credibility_score"])
	f.alerts.AssertCalled(t, "CreateForHighRisk", mock.Anything, mock.Anything, scoring.RiskHigh)
}

func TestAnalyzeTextLowRiskSkipsAlert(t *testing.T) {
	f := newAnalyzeFixture()

	score := 90.0
	f.ml.On("AnalyzeText", mock.Anything, mock.Anything).Return(&clients.MLResult{
		TextAnalysisScore: &score,
		Summary:           "Looks credible",
	})
	f.search.On("SearchText", mock.Anything).Return([]scoring.SearchMatch{
		{Name: "News Archive", URL: "https://example.com/archive", Confidence: 1.0},
	})
	f.facts.On("CheckText", mock.Anything).Return(nil)
	f.contents.On("SaveAnalysisResult", mock.AnythingOfType("*models.Content")).Return(nil)

	resp, body := postJSON(t, f.app, "/api/v1/analyze/text",
		map[string]string{"text": "The WHO recommends washing hands regularly."}, nil)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	// (50+90)/2 + 1.0*10 = 80
	assert.Equal(t, float64(80), body["credibility_score"])
	assert.Equal(t, "low", body["risk_level"])
	assert.Equal(t, true, body["source_verified"])
	f.alerts.AssertNotCalled(t, "CreateForHighRisk", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeTextValidation(t *testing.T) {
	f := newAnalyzeFixture()

	resp, body := postJSON(t, f.app, "/api/v1/analyze/text", map[string]string{"text": "   "}, nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, float64(fiber.StatusBadRequest), errBody["status"])
	assert.Contains(t, errBody["details"], "text")
	f.ml.AssertNotCalled(t, "AnalyzeText", mock.Anything, mock.Anything)
}

func TestAnalyzeTextOwnerFromToken(t *testing.T) {
	f := newAnalyzeFixture()
	userID := uuid.New()

	f.ml.On("AnalyzeText", mock.Anything, mock.Anything).Return(clients.FallbackResult())
	f.search.On("SearchText", mock.Anything).Return(nil)
	f.facts.On("CheckText", mock.Anything).Return(nil)
	f.contents.On("SaveAnalysisResult", mock.MatchedBy(func(content *models.Content) bool {
		return content.UserID != nil && *content.UserID == userID
	})).Return(nil)

	resp, _ := postJSON(t, f.app, "/api/v1/analyze/text",
		map[string]string{"text": "some ordinary statement"},
		map[string]string{"Authorization": "Bearer test-token-" + userID.String()})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	f.contents.AssertExpectations(t)
}

func TestAnalyzeURLFetchFailure(t *testing.T) {
	f := newAnalyzeFixture()

	f.pages.On("Fetch", mock.Anything, "https://unreachable.example.com").
		Return(nil, &clients.FetchError{Reason: "request timeout"})

	resp, body := postJSON(t, f.app, "/api/v1/analyze/url",
		map[string]string{"url": "https://unreachable.example.com"}, nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "Failed to fetch URL", errBody["message"])
	assert.Contains(t, errBody["details"], "request timeout")
}

func TestAnalyzeURLHappyPath(t *testing.T) {
	f := newAnalyzeFixture()

	meta := &clients.PageMeta{
		URL:         "https://example.com/story",
		Title:       "A story",
		Description: "Details about the story",
		TextSnippet: "Body text of the page",
	}
	f.pages.On("Fetch", mock.Anything, "https://example.com/story").Return(meta, nil)
	f.ml.On("AnalyzeMulti", mock.Anything, mock.MatchedBy(func(payload clients.MultiPayload) bool {
		return payload.URLMeta["url"] == meta.URL
	})).Return(&clients.MLResult{Summary: "Neutral page"})
	f.search.On("SearchText", mock.Anything).Return(nil)
	f.facts.On("CheckText", mock.Anything).Return(nil)
	f.contents.On("SaveAnalysisResult", mock.AnythingOfType("*models.Content")).Return(nil)

	resp, body := postJSON(t, f.app, "/api/v1/analyze/url",
		map[string]string{"url": "https://example.com/story"}, nil)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "url", body["type"])
	assert.Equal(t, float64(50), body["credibility_score"])
	assert.Equal(t, "moderate", body["risk_level"])
}

func TestSubmitFeedbackDuplicateConflict(t *testing.T) {
	f := newAnalyzeFixture()
	userID := uuid.New()
	content := &models.Content{ID: uuid.New(), ContentID: uuid.NewString()}

	f.contents.On("GetByContentID", content.ContentID).Return(content, nil)
	f.feedback.On("Create", userID, content.ID, models.FeedbackAgree, "").
		Return(nil, services.ErrDuplicateFeedback)

	resp, body := postJSON(t, f.app, "/api/v1/analyze/feedback", map[string]string{
		"contentId": content.ContentID,
		"userId":    userID.String(),
		"feedback":  "agree",
	}, nil)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "Feedback already submitted", errBody["message"])
}

func TestSubmitFeedbackTallies(t *testing.T) {
	f := newAnalyzeFixture()
	userID := uuid.New()
	content := &models.Content{ID: uuid.New(), ContentID: uuid.NewString()}
	fb := &models.Feedback{ID: uuid.New(), UserID: userID, ContentID: content.ID, Feedback: models.FeedbackDisagree}

	f.contents.On("GetByContentID", content.ContentID).Return(content, nil)
	f.feedback.On("Create", userID, content.ID, models.FeedbackDisagree, "too harsh").Return(fb, nil)
	f.feedback.On("Tallies", content.ID).Return(int64(3), int64(2), nil)

	resp, body := postJSON(t, f.app, "/api/v1/analyze/feedback", map[string]string{
		"contentId": content.ContentID,
		"userId":    userID.String(),
		"feedback":  "disagree",
		"notes":     "too harsh",
	}, nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(5), body["feedback_count"])
	assert.Equal(t, float64(3), body["agree_count"])
	assert.Equal(t, float64(2), body["disagree_count"])
}

func TestSubmitFeedbackUnknownContent(t *testing.T) {
	f := newAnalyzeFixture()

	f.contents.On("GetByContentID", mock.Anything).Return(nil, services.ErrContentNotFound)

	resp, _ := postJSON(t, f.app, "/api/v1/analyze/feedback", map[string]string{
		"contentId": uuid.NewString(),
		"userId":    uuid.NewString(),
		"feedback":  "agree",
	}, nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitFeedbackInvalidValue(t *testing.T) {
	f := newAnalyzeFixture()

	resp, _ := postJSON(t, f.app, "/api/v1/analyze/feedback", map[string]string{
		"contentId": uuid.NewString(),
		"userId":    uuid.NewString(),
		"feedback":  "maybe",
	}, nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	f.contents.AssertNotCalled(t, "GetByContentID", mock.Anything)
}

func TestPersistAndRespondSwallowsAlertFailure(t *testing.T) {
	f := newAnalyzeFixture()

	f.ml.On("AnalyzeText", mock.Anything, mock.Anything).Return(&clients.MLResult{})
	f.search.On("SearchText", mock.Anything).Return(nil)
	f.facts.On("CheckText", mock.Anything).Return(&scoring.FactCheck{Rating: "False"})
	f.contents.On("SaveAnalysisResult", mock.AnythingOfType("*models.Content")).Return(nil)
	f.alerts.On("CreateForHighRisk", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("alerts table unavailable"))

	resp, _ := postJSON(t, f.app, "/api/v1/analyze/text",
		map[string]string{"text": "miracle cure"}, nil)

	// Alerting is a side effect; the analysis still succeeds.
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
