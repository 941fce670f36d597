package analysis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/soilscope/soilscope/internal/cache"
	"github.com/soilscope/soilscope/pkg/models"
)

// DetailedRequest asks for an expanded recommendation set derived from an
// already-completed analysis (not from the raw report text).
type DetailedRequest struct {
	District string
	State    string
	Area     string
	Season   string
	Analysis *models.AIAnalysis
}

// Elaborate produces a detailed cultivation plan for a completed report.
// Synchronous and request-scoped. The contract guarantees a fully
// populated result: any upstream or parse failure returns the static
// fallback plan instead of an error.
func (s *Service) Elaborate(ctx context.Context, req DetailedRequest) *models.DetailedRecommendation {
	analysisJSON, err := json.Marshal(req.Analysis)
	if err != nil {
		return mockDetailed()
	}

	fp := cache.AnalysisFingerprint(req.District, req.State, req.Area, req.Season, string(analysisJSON))
	key := cache.DetailedKey(fp)

	if data, found, err := s.cache.Get(ctx, key); err == nil && found {
		var cached models.DetailedRecommendation
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	result := s.elaborateUpstream(ctx, req)

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			slog.Warn("caching detailed recommendation failed", "key", key, "error", err)
		}
	}
	return result
}

func (s *Service) elaborateUpstream(ctx context.Context, req DetailedRequest) *models.DetailedRecommendation {
	if s.provider == nil {
		return mockDetailed()
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.provider.Complete(callCtx, models.ChatRequest{
		System:      systemPrompt,
		User:        buildDetailedPrompt(req),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		slog.Error("upstream detailed call failed, serving fallback", "error", err)
		return mockDetailed()
	}

	obj := extractJSON(raw)
	if obj == "" {
		slog.Warn("detailed response contained no JSON, serving fallback")
		return mockDetailed()
	}

	var result models.DetailedRecommendation
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		slog.Warn("detailed response failed to decode, serving fallback", "error", err)
		return mockDetailed()
	}
	return &result
}
