// Package clients wraps the gateway's external collaborators: the ML
// analysis microservice, and the reverse-search / fact-check stand-ins.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/scoring"
)

// MLResult mirrors the ML service response. All score fields are
// nullable. Unavailable marks a degraded fallback result; callers must
// treat it as a valid result, never as an error.
type MLResult struct {
	TextAnalysisScore   *float64 `json:"text_analysis_score"`
	VisualAnalysisScore *float64 `json:"visual_analysis_score"`
	ManipulationProb    *float64 `json:"manipulation_prob"`
	OCRText             *string  `json:"ocr_text"`
	Sentiment           string   `json:"sentiment"`
	Claims              []string `json:"claims"`
	Contradictions      []string `json:"contradictions"`
	Reasons             []string `json:"reasons"`
	MatchSources        []string `json:"match_sources"`
	Summary             string   `json:"summary"`
	Unavailable         bool     `json:"analysis_unavailable"`
}

// Signals projects the result into the scorer's input type.
func (r *MLResult) Signals() scoring.Signals {
	return scoring.Signals{
		TextScore:        r.TextAnalysisScore,
		VisualScore:      r.VisualAnalysisScore,
		ManipulationProb: r.ManipulationProb,
		Reasons:          r.Reasons,
		Summary:          r.Summary,
		Unavailable:      r.Unavailable,
	}
}

// FallbackResult is returned when the ML service is unreachable after
// all retry attempts.
func FallbackResult() *MLResult {
	return &MLResult{
		Sentiment:      "unknown",
		Claims:         []string{},
		Contradictions: []string{},
		Reasons:        []string{"ML service is currently unavailable"},
		MatchSources:   []string{},
		Summary:        "Analysis temporarily unavailable. Please try again later.",
		Unavailable:    true,
	}
}

const (
	retryBaseDelay = 1 * time.Second
	retryMaxDelay  = 5 * time.Second
)

// MLClient calls the ML analysis microservice with per-call timeouts,
// bounded retries with exponential backoff, and a degraded fallback.
type MLClient struct {
	baseURL string
	timeout time.Duration
	retries int
	http    *http.Client
}

func NewMLClient(cfg *config.Config) *MLClient {
	return &MLClient{
		baseURL: cfg.MLServiceURL,
		timeout: cfg.MLServiceTimeout,
		retries: cfg.MLServiceRetries,
		http:    &http.Client{},
	}
}

// AnalyzeText submits text to the ML service. Always returns a usable
// result; transport and server failures degrade to FallbackResult.
func (c *MLClient) AnalyzeText(ctx context.Context, text string) *MLResult {
	body, _ := json.Marshal(map[string]string{"text": text})
	return c.withRetries(ctx, "text", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ml/analyze/text", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, c.timeout)
}

// AnalyzeImage uploads an image file as multipart form data. Images may
// take longer to process, so the per-call timeout is doubled.
func (c *MLClient) AnalyzeImage(ctx context.Context, imagePath string) *MLResult {
	return c.withRetries(ctx, "image", func(ctx context.Context) (*http.Request, error) {
		f, err := os.Open(imagePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", filepath.Base(imagePath))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ml/analyze/image", &buf)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req, nil
	}, c.timeout*2)
}

// MultiPayload is the combined text/image/url request for URL analysis.
type MultiPayload struct {
	Text      string         `json:"text,omitempty"`
	ImagePath string         `json:"image_path,omitempty"`
	URLMeta   map[string]any `json:"url_meta,omitempty"`
}

// AnalyzeMulti submits combined text and image metadata extracted from
// a web page.
func (c *MLClient) AnalyzeMulti(ctx context.Context, payload MultiPayload) *MLResult {
	body, _ := json.Marshal(payload)
	return c.withRetries(ctx, "multi", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ml/analyze/multi", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, c.timeout)
}

type permanentError struct {
	status int
}

func (e *permanentError) Error() string {
	return fmt.Sprintf("ml service returned status %d", e.status)
}

// withRetries runs the request up to c.retries times with exponential
// backoff. 4xx responses are non-transient and abort immediately; any
// exhaustion degrades to the fallback result.
func (c *MLClient) withRetries(ctx context.Context, mode string, build func(context.Context) (*http.Request, error), timeout time.Duration) *MLResult {
	delay := retryBaseDelay
	for attempt := 1; attempt <= c.retries; attempt++ {
		result, err := c.do(ctx, build, timeout)
		if err == nil {
			return result
		}

		slog.Error("ml service request failed", "mode", mode, "attempt", attempt, "retries", c.retries, "error", err.Error())

		if _, permanent := err.(*permanentError); permanent {
			break
		}
		if attempt == c.retries {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			slog.Warn("ml service call cancelled, returning fallback", "mode", mode)
			return FallbackResult()
		}
		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}

	slog.Warn("ml service unavailable, returning fallback", "mode", mode)
	return FallbackResult()
}

func (c *MLClient) do(ctx context.Context, build func(context.Context) (*http.Request, error), timeout time.Duration) (*MLResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := build(callCtx)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, &permanentError{status: resp.StatusCode}
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	var result MLResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode ml response: %w", err)
	}
	return &result, nil
}
