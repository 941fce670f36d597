package analysis

import (
	"encoding/json"
	"strings"

	"github.com/soilscope/soilscope/pkg/models"
)

// extractJSON locates a JSON object inside free-form model output by
// slicing from the first '{' to the last '}'. The model is prompted for
// pure JSON but routinely wraps it in prose.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

// parseAnalysis attempts a strict schema decode of the JSON object inside
// raw. The second return is false when no object was found or the decode
// failed; callers fall back to fallbackAnalysis so nothing is discarded.
func parseAnalysis(raw string) (*models.AIAnalysis, bool) {
	obj := extractJSON(raw)
	if obj == "" {
		return nil, false
	}

	var result models.AIAnalysis
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return nil, false
	}

	clampScores(&result)
	return &result, true
}

// fallbackAnalysis wraps an unparseable model response in the standard
// result shape: one generic recommendation, with the raw text preserved.
func fallbackAnalysis(raw string) *models.AIAnalysis {
	return &models.AIAnalysis{
		Recommendations: []models.CropRecommendation{
			{
				Crop:        "General Recommendation",
				Suitability: 70,
				Reason:      "The analysis could not be parsed into structured form; see rawAnalysis for the full text.",
			},
		},
		OverallScore: 70,
		AdditionalTips: []string{
			"The complete analysis is available in the rawAnalysis field.",
		},
		RawAnalysis: raw,
	}
}

// clampScores forces suitability and overall score into [0, 100]. Model
// output is not trusted to respect the prompted range.
func clampScores(a *models.AIAnalysis) {
	for i := range a.Recommendations {
		a.Recommendations[i].Suitability = clamp(a.Recommendations[i].Suitability)
	}
	a.OverallScore = clamp(a.OverallScore)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
