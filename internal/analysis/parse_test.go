package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"pure json", `{"a":1}`, `{"a":1}`},
		{"prose around json", "Sure! Here it is:\n{\"a\":1}\nHope that helps.", `{"a":1}`},
		{"no json", "no braces here", ""},
		{"only open brace", "start { and nothing", ""},
		{"nested objects", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.raw))
		})
	}
}

func TestParseAnalysis_Valid(t *testing.T) {
	raw := `Analysis complete: {"recommendations":[{"crop":"Rice","suitability":92,"reason":"good fit"}],"overallScore":81}`

	result, ok := parseAnalysis(raw)
	require.True(t, ok)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Rice", result.Recommendations[0].Crop)
	assert.Equal(t, 92, result.Recommendations[0].Suitability)
	assert.Equal(t, 81, result.OverallScore)
}

func TestParseAnalysis_ClampsScores(t *testing.T) {
	raw := `{"recommendations":[{"crop":"Rice","suitability":150,"reason":"r"},{"crop":"Wheat","suitability":-5,"reason":"r"}],"overallScore":999}`

	result, ok := parseAnalysis(raw)
	require.True(t, ok)
	assert.Equal(t, 100, result.Recommendations[0].Suitability)
	assert.Equal(t, 0, result.Recommendations[1].Suitability)
	assert.Equal(t, 100, result.OverallScore)
}

func TestParseAnalysis_MalformedJSON(t *testing.T) {
	_, ok := parseAnalysis(`{"recommendations": [unclosed`)
	assert.False(t, ok)
}

func TestParseAnalysis_NoJSON(t *testing.T) {
	_, ok := parseAnalysis("the model rambled and returned nothing structured")
	assert.False(t, ok)
}

func TestFallbackAnalysis_PreservesRawText(t *testing.T) {
	raw := "free-form agronomy advice with no JSON"

	result := fallbackAnalysis(raw)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, raw, result.RawAnalysis)
	assert.NotZero(t, result.Recommendations[0].Suitability)
}
