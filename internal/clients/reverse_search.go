package clients

import (
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/truthlens/truthlens-backend/internal/scoring"
)

// ReverseSearch is a stand-in for a real reverse image/text search
// provider. It returns synthetic matches and has no failure modes.
//
// TODO: replace with a real provider (TinEye, Google reverse search)
// once the platform has API access.
type ReverseSearch struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewReverseSearch(seed int64) *ReverseSearch {
	return &ReverseSearch{rng: rand.New(rand.NewSource(seed))}
}

var imageSampleSources = []scoring.SearchMatch{
	{Name: "News Source A", URL: "https://example.com/news/a", Confidence: 0.85},
	{Name: "Social Media Post", URL: "https://example.com/social/123", Confidence: 0.72},
	{Name: "Blog Article", URL: "https://example.com/blog/article", Confidence: 0.65},
	{Name: "Fact Check Site", URL: "https://example.com/factcheck/1", Confidence: 0.90},
}

var textSampleSources = []scoring.SearchMatch{
	{Name: "Fact Check Database", URL: "https://example.com/factcheck/vaccine", Confidence: 0.88},
	{Name: "News Archive", URL: "https://example.com/archive/2023", Confidence: 0.75},
	{Name: "Research Paper", URL: "https://example.com/research/paper", Confidence: 0.82},
}

var searchKeywords = []string{"vaccine", "cure", "election", "miracle", "breaking"}

// SearchImage returns 0-3 synthetic matches, deduplicated by URL and
// sorted by confidence descending.
func (s *ReverseSearch) SearchImage(imagePath string) []scoring.SearchMatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.rng.Intn(4)
	seen := make(map[string]bool, n)
	results := make([]scoring.SearchMatch, 0, n)
	for i := 0; i < n; i++ {
		src := imageSampleSources[s.rng.Intn(len(imageSampleSources))]
		if seen[src.URL] {
			continue
		}
		seen[src.URL] = true
		src.Confidence += (s.rng.Float64() - 0.5) * 0.1
		results = append(results, src)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	return results
}

// SearchText returns 1-2 synthetic matches when the text mentions a
// known keyword, otherwise no matches.
func (s *ReverseSearch) SearchText(text string) []scoring.SearchMatch {
	lower := strings.ToLower(text)
	triggered := false
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.rng.Intn(2) + 1
	results := make([]scoring.SearchMatch, 0, n)
	for i := 0; i < n; i++ {
		src := textSampleSources[s.rng.Intn(len(textSampleSources))]
		src.Confidence += (s.rng.Float64() - 0.5) * 0.1
		results = append(results, src)
	}
	return results
}
