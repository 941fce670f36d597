package analysis

import "strings"

// minValidationScore is the number of distinct keywords a document must
// contain to be treated as a plausible soil report.
const minValidationScore = 3

// soilKeywords is the bilingual (English/Hindi) term list used by the
// content gate. This is a cheap heuristic, not a classifier: its only job
// is to stop obviously irrelevant uploads before a model call is spent.
var soilKeywords = []string{
	"soil", "crop", "fertilizer", "fertiliser", "nitrogen", "phosphorus",
	"potassium", "ph", "nutrient", "agriculture", "farming", "harvest",
	"irrigation", "organic", "manure", "pesticide", "herbicide", "seed",
	"yield", "moisture", "acidic", "alkaline", "loam", "clay",
	"मिट्टी", "फसल", "उर्वरक", "खेती", "कृषि", "बीज", "सिंचाई", "खाद",
	"पोषक", "नाइट्रोजन", "जैविक", "कीटनाशक",
}

// ValidationResult is the outcome of the content gate.
type ValidationResult struct {
	IsValid       bool
	Score         int
	FoundKeywords []string
}

// ValidateContent counts distinct soil/agriculture keywords in text,
// case-insensitively. False positives and negatives are acceptable.
func ValidateContent(text string) ValidationResult {
	lower := strings.ToLower(text)

	var found []string
	for _, kw := range soilKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}

	return ValidationResult{
		IsValid:       len(found) >= minValidationScore,
		Score:         len(found),
		FoundKeywords: found,
	}
}
