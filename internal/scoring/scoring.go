// Package scoring converts ML, reverse-search and fact-check outputs
// into a credibility score and risk tier. All functions are pure.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// Signals is the subset of an ML analysis result the scorer consumes.
// Nil pointers mean the signal was not produced (or the service was
// unavailable and the caller is working with a degraded result).
type Signals struct {
	TextScore        *float64
	VisualScore      *float64
	ManipulationProb *float64
	Reasons          []string
	Summary          string
	Unavailable      bool
}

// SearchMatch is one reverse-search hit. Confidence is expected in [0,1].
type SearchMatch struct {
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	Confidence float64 `json:"match_confidence"`
}

// FactCheck is a single fact-check verdict, or absent (nil).
type FactCheck struct {
	Rating      string    `json:"rating"`
	Link        string    `json:"link"`
	Claim       string    `json:"claim"`
	FactChecker string    `json:"fact_checker"`
	Date        time.Time `json:"date"`
}

// EvidenceItem is one supporting-evidence record attached to a Content
// row: either a reverse-search match or a fact-check verdict.
type EvidenceItem struct {
	Type        string  `json:"type"`
	Source      string  `json:"source,omitempty"`
	URL         string  `json:"url,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	Rating      string  `json:"rating,omitempty"`
	Link        string  `json:"link,omitempty"`
	FactChecker string  `json:"fact_checker,omitempty"`
}

const maxReasons = 5

// Score computes the credibility score, an integer clamped to [0,100].
//
// Starting from a base of 50: present text/visual scores are averaged
// in, reverse-search matches add up to 10 points (average confidence),
// fact-check verdicts subtract 20 ("False") or 10 ("Misleading"), and
// in image mode the manipulation probability subtracts up to 30.
func Score(ml Signals, matches []SearchMatch, fc *FactCheck, isImage bool) int {
	score := 50.0

	if ml.TextScore != nil {
		score = (score + *ml.TextScore) / 2
	}
	if isImage && ml.VisualScore != nil {
		score = (score + *ml.VisualScore) / 2
	}

	if len(matches) > 0 {
		sum := 0.0
		for _, m := range matches {
			sum += m.Confidence
		}
		score += sum / float64(len(matches)) * 10
	}

	if fc != nil {
		switch {
		case strings.Contains(fc.Rating, "False"):
			score -= 20
		case strings.Contains(fc.Rating, "Misleading"):
			score -= 10
		}
	}

	if isImage && ml.ManipulationProb != nil {
		score -= *ml.ManipulationProb * 30
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// Risk maps a credibility score to its risk tier.
func Risk(score int) string {
	switch {
	case score >= 70:
		return RiskLow
	case score >= 40:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// Reasons assembles the human-readable reason list, at most five
// entries: ML reasons first, then the reverse-search summary, the
// fact-check rating, and a manipulation warning for image mode.
func Reasons(ml Signals, matches []SearchMatch, fc *FactCheck, isImage bool) []string {
	reasons := make([]string, 0, maxReasons)
	reasons = append(reasons, ml.Reasons...)

	if len(matches) == 0 {
		reasons = append(reasons, "No matching sources found in reverse search")
	} else {
		reasons = append(reasons, fmt.Sprintf("Found %d matching source(s) in reverse search", len(matches)))
	}

	if fc != nil {
		reasons = append(reasons, "Fact-check rating: "+fc.Rating)
	}

	if isImage && ml.ManipulationProb != nil && *ml.ManipulationProb > 0.3 {
		reasons = append(reasons, fmt.Sprintf("High manipulation probability detected (%.1f%%)", *ml.ManipulationProb*100))
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// Evidence builds the supporting-evidence list: one record per
// reverse-search match, then the fact-check verdict if present.
func Evidence(matches []SearchMatch, fc *FactCheck) []EvidenceItem {
	evidence := make([]EvidenceItem, 0, len(matches)+1)
	for _, m := range matches {
		evidence = append(evidence, EvidenceItem{
			Type:       "source_match",
			Source:     m.Name,
			URL:        m.URL,
			Confidence: m.Confidence,
		})
	}
	if fc != nil {
		evidence = append(evidence, EvidenceItem{
			Type:        "fact_check",
			Rating:      fc.Rating,
			Link:        fc.Link,
			FactChecker: fc.FactChecker,
		})
	}
	return evidence
}
