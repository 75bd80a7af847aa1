package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta is the metadata extracted from a fetched web page.
type PageMeta struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	TextSnippet string `json:"text_snippet"`
}

// Map returns the metadata as the url_meta payload for multi-modal
// ML analysis.
func (m *PageMeta) Map() map[string]any {
	return map[string]any{
		"url":          m.URL,
		"title":        m.Title,
		"description":  m.Description,
		"image_url":    m.ImageURL,
		"text_snippet": m.TextSnippet,
	}
}

// FetchError describes a failed page fetch. The analyze flow maps it to
// a 400 response with the underlying reason.
type FetchError struct {
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *FetchError) Unwrap() error { return e.Err }

const (
	pageUserAgent = "Mozilla/5.0 (compatible; TruthLens/1.0)"
	snippetMaxLen = 1000
)

// PageFetcher downloads a page with a bounded timeout and extracts its
// text excerpt and markup metadata.
type PageFetcher struct {
	timeout time.Duration
	http    *http.Client
}

func NewPageFetcher(timeout time.Duration) *PageFetcher {
	return &PageFetcher{timeout: timeout, http: &http.Client{}}
}

// Fetch downloads rawURL and extracts its metadata. Timeouts, network
// errors and non-2xx statuses return a *FetchError.
func (p *PageFetcher) Fetch(ctx context.Context, rawURL string) (*PageMeta, error) {
	base, err := url.Parse(rawURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &FetchError{Reason: "invalid URL format"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Reason: "invalid URL format", Err: err}
	}
	req.Header.Set("User-Agent", pageUserAgent)

	resp, err := p.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &FetchError{Reason: "request timeout"}
		}
		return nil, &FetchError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Reason: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Reason: "failed to parse page", Err: err}
	}

	return ExtractPageMeta(base, doc), nil
}

// ExtractPageMeta pulls the text excerpt, title, description and main
// image from a parsed document. Relative image URLs are resolved
// against the page origin.
func ExtractPageMeta(base *url.URL, doc *goquery.Document) *PageMeta {
	snippet := doc.Find("p").Text()
	if len(snippet) > snippetMaxLen {
		snippet = snippet[:snippetMaxLen]
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title, _ = doc.Find(`meta[property="og:title"]`).Attr("content")
	}

	description, _ := doc.Find(`meta[name="description"]`).Attr("content")
	if description == "" {
		description, _ = doc.Find(`meta[property="og:description"]`).Attr("content")
	}

	imageURL, _ := doc.Find(`meta[property="og:image"]`).Attr("content")
	if imageURL == "" {
		imageURL, _ = doc.Find("img").First().Attr("src")
	}
	if imageURL != "" && !strings.HasPrefix(imageURL, "http") {
		if ref, err := url.Parse(imageURL); err == nil {
			imageURL = base.ResolveReference(ref).String()
		}
	}

	return &PageMeta{
		URL:         base.String(),
		Title:       title,
		Description: strings.TrimSpace(description),
		ImageURL:    imageURL,
		TextSnippet: snippet,
	}
}
