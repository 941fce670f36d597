package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soilscope/soilscope/internal/ai/mock"
	"github.com/soilscope/soilscope/internal/analysis"
	"github.com/soilscope/soilscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailedRequest() analysis.DetailedRequest {
	return analysis.DetailedRequest{
		District: "Pune",
		State:    "Maharashtra",
		Area:     "Baner",
		Season:   models.SeasonRabi,
		Analysis: &models.AIAnalysis{
			Recommendations: []models.CropRecommendation{
				{Crop: "Wheat", Suitability: 85, Reason: "fits rabi season"},
			},
			SoilDeficiencies: []models.SoilDeficiency{{Nutrient: "Nitrogen", Solution: "urea"}},
			OverallScore:     78,
		},
	}
}

func TestElaborate_MockModeReturnsFullPlan(t *testing.T) {
	svc := newService(nil)

	plan := svc.Elaborate(context.Background(), detailedRequest())

	require.NotNil(t, plan)
	assert.NotEmpty(t, plan.SoilHealth.PH)
	assert.NotEmpty(t, plan.CropRecommendations.Primary)
	assert.NotEmpty(t, plan.FertilizerSchedule)
	assert.NotEmpty(t, plan.PestManagement)
	assert.NotEmpty(t, plan.IrrigationSchedule)
	assert.NotEmpty(t, plan.SeasonalTips)
	require.NotNil(t, plan.Economics)
	assert.NotEmpty(t, plan.Economics.ProfitMargin)
}

func TestElaborate_ParsesUpstreamJSON(t *testing.T) {
	provider := mock.NewStaticProvider(`Plan follows.
{"soilHealth":{"pH":"6.8 - near neutral","organicMatter":"3.0% - good","nutrients":{"nitrogen":"adequate"}},
"cropRecommendations":{"primary":["Wheat"],"secondary":["Gram"]},
"fertilizerSchedule":[{"stage":"Pre-planting","fertilizer":"DAP","quantity":"40 kg/acre","timing":"before sowing"}],
"pestManagement":[{"pest":"Aphids","solution":"neem oil","timing":"early"}],
"irrigationSchedule":[{"stage":"Germination","frequency":"weekly","quantity":"20 mm"}],
"seasonalTips":["scout weekly"],
"economics":{"estimatedCost":"low","expectedRevenue":"high","profitMargin":"40%"}}`)
	svc := newService(provider)

	plan := svc.Elaborate(context.Background(), detailedRequest())

	assert.Equal(t, "6.8 - near neutral", plan.SoilHealth.PH)
	assert.Equal(t, []string{"Wheat"}, plan.CropRecommendations.Primary)
	require.NotNil(t, plan.Economics)
	assert.Equal(t, "40%", plan.Economics.ProfitMargin)
}

func TestElaborate_UpstreamFailureServesFallback(t *testing.T) {
	svc := newService(mock.NewFailingProvider(errors.New("connection reset")))

	plan := svc.Elaborate(context.Background(), detailedRequest())

	require.NotNil(t, plan)
	assert.Equal(t, []string{"Wheat", "Barley", "Mustard"}, plan.CropRecommendations.Primary)
}

func TestElaborate_NoJSONServesFallback(t *testing.T) {
	svc := newService(mock.NewStaticProvider("sorry, I cannot produce JSON today"))

	plan := svc.Elaborate(context.Background(), detailedRequest())
	assert.NotEmpty(t, plan.IrrigationSchedule)
}

func TestElaborate_CachesResult(t *testing.T) {
	provider := mock.NewStaticProvider(`{"soilHealth":{"pH":"7.0","organicMatter":"ok","nutrients":{}},"cropRecommendations":{"primary":["Maize"]},"fertilizerSchedule":[],"pestManagement":[],"irrigationSchedule":[],"seasonalTips":[]}`)
	svc := newService(provider)
	ctx := context.Background()

	first := svc.Elaborate(ctx, detailedRequest())
	second := svc.Elaborate(ctx, detailedRequest())

	assert.Equal(t, 1, provider.Calls)
	assert.Equal(t, first, second)
}
