package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/truthlens/truthlens-backend/internal/config"
)

func newTestClient(baseURL string, retries int) *MLClient {
	return NewMLClient(&config.Config{
		MLServiceURL:     baseURL,
		MLServiceTimeout: 2 * time.Second,
		MLServiceRetries: retries,
	})
}

func TestAnalyzeTextSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ml/analyze/text", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text_analysis_score": 72.5, "reasons": ["plausible phrasing"], "summary": "mostly credible"}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 3).AnalyzeText(context.Background(), "some claim")

	assert.False(t, result.Unavailable)
	assert.NotNil(t, result.TextAnalysisScore)
	assert.Equal(t, 72.5, *result.TextAnalysisScore)
	assert.Equal(t, "mostly credible", result.Summary)
}

func TestAnalyzeTextRetriesTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"summary": "recovered"}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 3).AnalyzeText(context.Background(), "some claim")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.False(t, result.Unavailable)
	assert.Equal(t, "recovered", result.Summary)
}

func TestAnalyzeTextClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	result := newTestClient(server.URL, 3).AnalyzeText(context.Background(), "some claim")

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, result.Unavailable)
}

func TestAnalyzeTextFallbackWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := newTestClient(server.URL, 1).AnalyzeText(context.Background(), "some claim")

	assert.True(t, result.Unavailable)
	assert.Nil(t, result.TextAnalysisScore)
	assert.Equal(t, []string{"ML service is currently unavailable"}, result.Reasons)
	assert.Contains(t, result.Summary, "temporarily unavailable")
}

func TestFallbackResultShape(t *testing.T) {
	result := FallbackResult()

	assert.True(t, result.Unavailable)
	assert.Nil(t, result.TextAnalysisScore)
	assert.Nil(t, result.VisualAnalysisScore)
	assert.Nil(t, result.ManipulationProb)
	assert.Empty(t, result.Claims)
	assert.Equal(t, "unknown", result.Sentiment)

	signals := result.Signals()
	assert.True(t, signals.Unavailable)
	assert.Nil(t, signals.TextScore)
}

func TestAnalyzeMultiPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ml/analyze/multi", r.URL.Path)
		w.Write([]byte(`{"text_analysis_score": 40}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 1).AnalyzeMulti(context.Background(), MultiPayload{
		Text:    "page text",
		URLMeta: map[string]any{"url": "https://example.com"},
	})

	assert.False(t, result.Unavailable)
	assert.Equal(t, 40.0, *result.TextAnalysisScore)
}
