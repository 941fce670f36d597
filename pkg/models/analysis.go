package models

// AIAnalysis is the structured output of the analysis orchestrator. All
// variants (genuine model response, validation rejection, degraded
// fallback) share this one shape, so consumers only ever read the
// optional marker fields instead of branching on a result type.
//
// JSON field names match the schema the model is prompted to return.
type AIAnalysis struct {
	Recommendations  []CropRecommendation `json:"recommendations"`
	Fertilizers      []Fertilizer         `json:"fertilizers,omitempty"`
	Herbicides       []Herbicide          `json:"herbicides,omitempty"`
	Pesticides       []Pesticide          `json:"pesticides,omitempty"`
	SoilDeficiencies []SoilDeficiency     `json:"soilDeficiencies,omitempty"`
	OverallScore     int                  `json:"overallScore"`
	AdditionalTips   []string             `json:"additionalTips,omitempty"`

	// RawAnalysis preserves the untouched model text when no JSON object
	// could be parsed out of the response.
	RawAnalysis string `json:"rawAnalysis,omitempty"`

	// Validation markers, set when the content gate rejected the upload.
	ValidationError bool     `json:"validationError,omitempty"`
	ValidationScore int      `json:"validationScore,omitempty"`
	FoundKeywords   []string `json:"foundKeywords,omitempty"`

	// Degraded markers. MockData flags deterministic fallback output;
	// Error and Timestamp record an upstream failure.
	MockData  bool   `json:"mockData,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// CropRecommendation ranks a crop for the report's location and season.
// Suitability is a 0-100 integer; the list keeps the model's own ordering.
type CropRecommendation struct {
	Crop        string `json:"crop"`
	Suitability int    `json:"suitability"`
	Reason      string `json:"reason"`
}

// Fertilizer is a single fertilizer treatment entry.
type Fertilizer struct {
	Name              string `json:"name"`
	Quantity          string `json:"quantity"`
	ApplicationTime   string `json:"applicationTime"`
	Purpose           string `json:"purpose"`
	ApplicationMethod string `json:"applicationMethod,omitempty"`
}

// Herbicide is a single herbicide treatment entry.
type Herbicide struct {
	Name            string   `json:"name"`
	Quantity        string   `json:"quantity"`
	ApplicationTime string   `json:"applicationTime"`
	TargetWeeds     []string `json:"targetWeeds,omitempty"`
	SafetyNotes     string   `json:"safetyNotes,omitempty"`
}

// Pesticide is a single pesticide treatment entry.
type Pesticide struct {
	Name            string   `json:"name"`
	Quantity        string   `json:"quantity"`
	ApplicationTime string   `json:"applicationTime"`
	TargetPests     []string `json:"targetPests,omitempty"`
	SafetyNotes     string   `json:"safetyNotes,omitempty"`
}

// SoilDeficiency describes a nutrient gap and its remedy.
type SoilDeficiency struct {
	Nutrient         string `json:"nutrient"`
	CurrentLevel     string `json:"currentLevel,omitempty"`
	RecommendedLevel string `json:"recommendedLevel,omitempty"`
	Solution         string `json:"solution"`
	Quantity         string `json:"quantity,omitempty"`
	Timeline         string `json:"timeline,omitempty"`
}
