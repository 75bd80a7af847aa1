package clients

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTextKeywordVerdicts(t *testing.T) {
	fc := NewFactCheck()

	cases := []struct {
		text   string
		rating string
	}{
		{"New vaccine causes outrage", "False"},
		{"Scientists discover miracle cure for all diseases!", "False"},
		{"Election fraud claims surface again", "Partially False"},
		{"Click here to win a free phone", "Misleading"},
	}
	for _, tc := range cases {
		verdict := fc.CheckText(tc.text)
		require.NotNil(t, verdict, tc.text)
		assert.Equal(t, tc.rating, verdict.Rating, tc.text)
		assert.NotEmpty(t, verdict.Link)
		assert.Equal(t, "Example Fact Check Organization", verdict.FactChecker)
	}
}

func TestCheckTextNoMatch(t *testing.T) {
	fc := NewFactCheck()

	assert.Nil(t, fc.CheckText("The weather is mild today."))
}

func TestCheckTextCaseInsensitive(t *testing.T) {
	fc := NewFactCheck()

	verdict := fc.CheckText("VACCINE NEWS")
	require.NotNil(t, verdict)
	assert.Equal(t, "False", verdict.Rating)
}

func TestCheckTextClaimTruncation(t *testing.T) {
	fc := NewFactCheck()

	long := "vaccine " + strings.Repeat("a", 200)
	verdict := fc.CheckText(long)
	require.NotNil(t, verdict)
	assert.Len(t, verdict.Claim, 103)
	assert.True(t, strings.HasSuffix(verdict.Claim, "..."))
}

func TestCheckImageRequiresOCRText(t *testing.T) {
	fc := NewFactCheck()

	assert.Nil(t, fc.CheckImage("/tmp/img.jpg", ""))

	verdict := fc.CheckImage("/tmp/img.jpg", "miracle cure in a bottle")
	require.NotNil(t, verdict)
	assert.Equal(t, "False", verdict.Rating)
}
