package analysis

import (
	"fmt"

	"github.com/soilscope/soilscope/pkg/models"
)

// mockAnalysis builds the deterministic fallback analysis served when no
// upstream credentials are configured. Identical inputs always produce an
// identical result: exactly five recommendations led by Rice, overall
// score 75.
func mockAnalysis(req Request) *models.AIAnalysis {
	return &models.AIAnalysis{
		Recommendations: []models.CropRecommendation{
			{Crop: "Rice", Suitability: 85, Reason: fmt.Sprintf("Well suited to the %s season in %s with adequate water availability and strong local demand.", req.Season, req.State)},
			{Crop: "Wheat", Suitability: 78, Reason: "Reliable staple with established procurement channels and moderate input costs."},
			{Crop: "Maize", Suitability: 72, Reason: "Tolerates a wide range of soil conditions and fits well into rotation plans."},
			{Crop: "Cotton", Suitability: 65, Reason: "Viable cash crop where irrigation is assured; monitor for bollworm pressure."},
			{Crop: "Sugarcane", Suitability: 60, Reason: "High water requirement; recommended only with dependable irrigation."},
		},
		Fertilizers: []models.Fertilizer{
			{Name: "Urea (46-0-0)", Quantity: "100 kg/hectare", ApplicationTime: "Split: half at sowing, half 30 days after", Purpose: "Corrects nitrogen deficiency and supports vegetative growth", ApplicationMethod: "Broadcasting"},
			{Name: "DAP (18-46-0)", Quantity: "50 kg/hectare", ApplicationTime: "Before sowing", Purpose: "Supplies phosphorus for root development", ApplicationMethod: "Drilling"},
		},
		Herbicides: []models.Herbicide{
			{Name: "Pendimethalin 30% EC", Quantity: "1 liter/hectare", ApplicationTime: "Within 3 days of sowing", TargetWeeds: []string{"Barnyard grass", "Crabgrass"}, SafetyNotes: "Apply with protective equipment; avoid drift to neighboring fields."},
		},
		Pesticides: []models.Pesticide{
			{Name: "Imidacloprid 17.8% SL", Quantity: "125 ml/hectare", ApplicationTime: "At first sign of sucking pest infestation", TargetPests: []string{"Aphids", "Whiteflies"}, SafetyNotes: "Observe a 21-day pre-harvest interval."},
		},
		SoilDeficiencies: []models.SoilDeficiency{
			{Nutrient: "Nitrogen", CurrentLevel: "Low", RecommendedLevel: "280-560 kg/hectare", Solution: "Apply urea in split doses and incorporate green manure", Quantity: "100 kg/hectare urea", Timeline: "Visible improvement within one season"},
			{Nutrient: "Organic Carbon", CurrentLevel: "0.4%", RecommendedLevel: "0.75%", Solution: "Add farmyard manure or compost annually", Quantity: "5 tonnes/hectare", Timeline: "2-3 seasons"},
		},
		OverallScore: 75,
		AdditionalTips: []string{
			fmt.Sprintf("Plan sowing dates around the typical %s onset in %s.", req.Season, req.District),
			"Test soil every 2-3 years to track nutrient trends.",
			"Rotate cereals with legumes to restore soil nitrogen.",
			"Stagger harvests where possible to catch better market prices.",
		},
		MockData: true,
	}
}

// errorAnalysis is the degraded variant recorded when the upstream call
// itself fails. The report still completes; the error travels with the
// payload instead of failing the pipeline.
func errorAnalysis(req Request, errMsg, timestamp string) *models.AIAnalysis {
	a := mockAnalysis(req)
	a.Error = errMsg
	a.Timestamp = timestamp
	a.AdditionalTips = append([]string{
		"The AI provider was unavailable; these are general recommendations for your region and season.",
	}, a.AdditionalTips...)
	return a
}

// rejectedAnalysis is the result shape for uploads the content gate
// refused: zero recommendations plus the validation evidence.
func rejectedAnalysis(v ValidationResult) *models.AIAnalysis {
	return &models.AIAnalysis{
		Recommendations: []models.CropRecommendation{},
		OverallScore:    0,
		AdditionalTips: []string{
			"The uploaded document does not appear to be a soil or agriculture report.",
			"Please upload a soil test report containing nutrient levels, pH values, or crop details.",
			fmt.Sprintf("At least %d agriculture-related terms are required; %d were found.", minValidationScore, v.Score),
		},
		ValidationError: true,
		ValidationScore: v.Score,
		FoundKeywords:   v.FoundKeywords,
	}
}

// mockDetailed is the static, fully populated detailed-recommendation
// fallback. The elaborate contract guarantees a renderable object even
// when the upstream is down.
func mockDetailed() *models.DetailedRecommendation {
	return &models.DetailedRecommendation{
		SoilHealth: models.SoilHealth{
			PH:            "6.2 - Slightly acidic, needs lime application",
			OrganicMatter: "2.1% - Low, add compost",
			Nutrients: map[string]string{
				"nitrogen":   "45 ppm - Low, apply urea",
				"phosphorus": "18 ppm - Medium, apply DAP",
				"potassium":  "120 ppm - Adequate",
			},
		},
		CropRecommendations: models.CropPlan{
			Primary:   []string{"Wheat", "Barley", "Mustard"},
			Secondary: []string{"Gram", "Lentil", "Peas"},
			Avoid:     []string{"Rice - requires more water"},
		},
		FertilizerSchedule: []models.FertilizerStage{
			{Stage: "Pre-planting", Fertilizer: "DAP (18-46-0)", Quantity: "50 kg per acre", Timing: "15 days before sowing"},
			{Stage: "First top dressing", Fertilizer: "Urea (46-0-0)", Quantity: "50 kg per acre", Timing: "25-30 days after sowing"},
			{Stage: "Second top dressing", Fertilizer: "Urea (46-0-0)", Quantity: "25 kg per acre", Timing: "45-50 days after sowing"},
		},
		PestManagement: []models.PestControl{
			{Pest: "Aphids", Solution: "Imidacloprid 20 ml per acre", Timing: "When 5% plants show infestation", Prevention: "Use resistant varieties"},
			{Pest: "Rust disease", Solution: "Mancozeb 2 kg per acre", Timing: "First appearance of symptoms", Prevention: "Crop rotation with legumes"},
		},
		IrrigationSchedule: []models.IrrigationStage{
			{Stage: "Sowing to germination", Frequency: "Every 3-4 days", Quantity: "15-20 mm", Method: "Light irrigation"},
			{Stage: "Tillering", Frequency: "Every 7-10 days", Quantity: "25-30 mm", Method: "Medium irrigation"},
			{Stage: "Flowering to grain filling", Frequency: "Every 5-7 days", Quantity: "30-35 mm", Method: "Heavy irrigation"},
		},
		SeasonalTips: []string{
			"Monitor soil moisture regularly",
			"Apply organic matter to improve soil structure",
			"Use crop rotation to break pest cycles",
			"Test soil every 2-3 years",
			"Keep field records for better planning",
		},
		Economics: &models.CropEconomics{
			EstimatedCost:   "₹25,000-30,000 per acre",
			ExpectedRevenue: "₹45,000-55,000 per acre",
			ProfitMargin:    "35-45%",
			MarketOutlook:   "Stable demand with government procurement support",
		},
	}
}
