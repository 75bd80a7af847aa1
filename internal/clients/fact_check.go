package clients

import (
	"strings"
	"time"

	"github.com/truthlens/truthlens-backend/internal/scoring"
)

// FactCheck is a stand-in for a real fact-checking provider. Verdicts
// are keyword-triggered and deterministic.
//
// TODO: replace with the Google Fact Check Tools API once credentials
// are provisioned.
type FactCheck struct{}

func NewFactCheck() *FactCheck {
	return &FactCheck{}
}

type verdict struct {
	keyword string
	rating  string
	link    string
}

// Ordered so multi-keyword text always yields the same verdict.
var factCheckKeywords = []verdict{
	{keyword: "vaccine", rating: "False", link: "https://example-factcheck.org/vaccine-myths"},
	{keyword: "cure", rating: "False", link: "https://example-factcheck.org/miracle-cures"},
	{keyword: "election", rating: "Partially False", link: "https://example-factcheck.org/election-claims"},
	{keyword: "miracle", rating: "False", link: "https://example-factcheck.org/miracle-claims"},
	{keyword: "click here", rating: "Misleading", link: "https://example-factcheck.org/clickbait"},
}

// CheckText matches the text against known misinformation keywords and
// returns a verdict, or nil when nothing matches.
func (f *FactCheck) CheckText(text string) *scoring.FactCheck {
	lower := strings.ToLower(text)
	for _, v := range factCheckKeywords {
		if strings.Contains(lower, v.keyword) {
			claim := text
			if len(claim) > 100 {
				claim = claim[:100] + "..."
			}
			return &scoring.FactCheck{
				Rating:      v.rating,
				Link:        v.link,
				Claim:       claim,
				FactChecker: "Example Fact Check Organization",
				Date:        time.Now().UTC(),
			}
		}
	}
	return nil
}

// CheckImage fact-checks an image via its OCR-extracted text. No OCR
// text means no verdict.
func (f *FactCheck) CheckImage(imagePath, ocrText string) *scoring.FactCheck {
	if ocrText == "" {
		return nil
	}
	return f.CheckText(ocrText)
}
