package analysis

import (
	"fmt"
	"strings"
)

// systemPrompt frames the model as a senior Indian agronomist. Kept stable
// so cached fingerprints stay meaningful across deploys.
const systemPrompt = "You are Dr. Rajesh Kumar, a leading agricultural scientist with 25+ years " +
	"of experience in Indian agriculture, soil science, and crop management. You have deep " +
	"knowledge of regional farming practices, local crops, fertilizers, pesticides available " +
	"in Indian markets, and sustainable farming techniques. Provide expert recommendations " +
	"based on scientific principles and practical farming experience."

func buildAnalysisPrompt(req Request) string {
	text := req.ExtractedText
	if text == "" {
		text = "No specific soil data provided"
	}

	return fmt.Sprintf(`As an expert agricultural consultant specializing in Indian agriculture, analyze the following soil report data and provide comprehensive recommendations:

LOCATION: %s, %s, %s
SEASON: %s
SOIL REPORT DATA: %s

Please provide detailed analysis and recommendations in the following JSON format:

{
  "recommendations": [
    {"crop": "Crop Name", "suitability": 95, "reason": "Why this crop suits the soil, climate, and market"}
  ],
  "fertilizers": [
    {"name": "Fertilizer Name", "quantity": "Amount per hectare", "applicationTime": "When to apply", "purpose": "Deficiency addressed", "applicationMethod": "How to apply"}
  ],
  "herbicides": [
    {"name": "Herbicide Name", "quantity": "Amount per hectare", "applicationTime": "When to apply", "targetWeeds": ["Weed names"], "safetyNotes": "Safety notes"}
  ],
  "pesticides": [
    {"name": "Pesticide Name", "quantity": "Amount per hectare", "applicationTime": "When to apply", "targetPests": ["Pest names"], "safetyNotes": "Safety notes"}
  ],
  "soilDeficiencies": [
    {"nutrient": "Nutrient Name", "currentLevel": "Current level", "recommendedLevel": "Optimal level", "solution": "Treatment", "quantity": "Amount per hectare", "timeline": "Time to improvement"}
  ],
  "overallScore": 78,
  "additionalTips": ["Region and season specific farming tips"]
}

Important Instructions:
1. Provide TOP 5 crop recommendations suitable for %s season in %s, %s
2. Consider local climate, soil conditions, water availability, and market demand
3. Give specific fertilizer, herbicide, and pesticide names commonly available in India
4. Provide exact quantities in kg/hectare or liters/hectare
5. Consider organic and sustainable farming practices where possible
6. Include safety guidelines for chemical applications

Analyze thoroughly and provide actionable, region-specific recommendations.`,
		req.Area, req.District, req.State, req.Season, text,
		req.Season, req.State, req.District)
}

func buildDetailedPrompt(req DetailedRequest) string {
	var crops []string
	for _, rec := range req.Analysis.Recommendations {
		crops = append(crops, fmt.Sprintf("%s (suitability %d)", rec.Crop, rec.Suitability))
	}
	var deficiencies []string
	for _, d := range req.Analysis.SoilDeficiencies {
		deficiencies = append(deficiencies, d.Nutrient)
	}

	return fmt.Sprintf(`A soil report from %s, %s, %s was analyzed for the %s season with these results:

RECOMMENDED CROPS: %s
SOIL DEFICIENCIES: %s
OVERALL SCORE: %d/100

Expand this analysis into a detailed cultivation plan as a single JSON object with this exact shape:

{
  "soilHealth": {"pH": "...", "organicMatter": "...", "nutrients": {"nitrogen": "...", "phosphorus": "...", "potassium": "..."}},
  "cropRecommendations": {"primary": ["..."], "secondary": ["..."], "avoid": ["..."]},
  "fertilizerSchedule": [{"stage": "...", "fertilizer": "...", "quantity": "...", "timing": "..."}],
  "pestManagement": [{"pest": "...", "solution": "...", "timing": "...", "prevention": "..."}],
  "irrigationSchedule": [{"stage": "...", "frequency": "...", "quantity": "...", "method": "..."}],
  "seasonalTips": ["..."],
  "economics": {"estimatedCost": "...", "expectedRevenue": "...", "profitMargin": "...", "marketOutlook": "..."}
}

Quantities in per-acre units, products available in Indian markets, timings relative to sowing.`,
		req.Area, req.District, req.State, req.Season,
		joinOr(crops, "none"), joinOr(deficiencies, "none reported"),
		req.Analysis.OverallScore)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
