package models

// DetailedRecommendation is the expanded recommendation set produced on
// demand for an already-completed report. Unlike AIAnalysis it is never
// persisted; it is computed per request (with caching) and always fully
// populated, since upstream failures fall back to static content.
type DetailedRecommendation struct {
	SoilHealth          SoilHealth          `json:"soilHealth"`
	CropRecommendations CropPlan            `json:"cropRecommendations"`
	FertilizerSchedule  []FertilizerStage   `json:"fertilizerSchedule"`
	PestManagement      []PestControl       `json:"pestManagement"`
	IrrigationSchedule  []IrrigationStage   `json:"irrigationSchedule"`
	SeasonalTips        []string            `json:"seasonalTips"`
	Economics           *CropEconomics      `json:"economics,omitempty"`
}

// SoilHealth summarizes pH, organic matter, and per-nutrient readings.
type SoilHealth struct {
	PH            string            `json:"pH"`
	OrganicMatter string            `json:"organicMatter"`
	Nutrients     map[string]string `json:"nutrients"`
}

// CropPlan partitions crops into primary, secondary, and avoid lists.
type CropPlan struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Avoid     []string `json:"avoid,omitempty"`
}

// FertilizerStage is one entry in the fertilizer application schedule.
type FertilizerStage struct {
	Stage      string `json:"stage"`
	Fertilizer string `json:"fertilizer"`
	Quantity   string `json:"quantity"`
	Timing     string `json:"timing"`
}

// PestControl is one row of the pest-management table.
type PestControl struct {
	Pest       string `json:"pest"`
	Solution   string `json:"solution"`
	Timing     string `json:"timing"`
	Prevention string `json:"prevention,omitempty"`
}

// IrrigationStage is one entry in the irrigation schedule.
type IrrigationStage struct {
	Stage     string `json:"stage"`
	Frequency string `json:"frequency"`
	Quantity  string `json:"quantity"`
	Method    string `json:"method,omitempty"`
}

// CropEconomics is a rough cost/revenue outlook for the primary crop.
type CropEconomics struct {
	EstimatedCost    string `json:"estimatedCost"`
	ExpectedRevenue  string `json:"expectedRevenue"`
	ProfitMargin     string `json:"profitMargin"`
	MarketOutlook    string `json:"marketOutlook,omitempty"`
}
