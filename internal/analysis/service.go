// Package analysis orchestrates AI soil-report analysis: content
// validation, prompt construction, upstream calls, response repair, and
// result caching.
package analysis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/soilscope/soilscope/internal/cache"
	"github.com/soilscope/soilscope/internal/config"
	"github.com/soilscope/soilscope/pkg/models"
)

// Request carries the inputs of one analysis: where and when the sample
// was taken, plus the text extracted from the uploaded report.
type Request struct {
	District      string
	State         string
	Area          string
	Season        string
	ExtractedText string
}

// Service orchestrates AI analysis. A nil provider puts the service in
// mock mode: every analysis is served from deterministic templates.
type Service struct {
	provider models.ChatProvider
	cache    cache.Cache
	cfg      config.AIConfig
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates an analysis Service.
func NewService(provider models.ChatProvider, c cache.Cache, cfg config.AIConfig, ttl time.Duration) *Service {
	return &Service{
		provider: provider,
		cache:    c,
		cfg:      cfg,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Used by tests to pin the
// timestamp recorded on degraded results.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Analyze produces a structured analysis for req. It never fails on
// content or upstream problems; every path yields a usable AIAnalysis.
// All variants (success, rejection, degraded) are cached under the same
// request fingerprint for the configured TTL, so repeated identical
// requests replay the stored result without a second upstream call.
func (s *Service) Analyze(ctx context.Context, req Request) *models.AIAnalysis {
	fp := cache.AnalysisFingerprint(req.District, req.State, req.Area, req.Season, req.ExtractedText)
	key := cache.AnalysisKey(fp)

	if cached, ok := s.getCached(ctx, key); ok {
		return cached
	}

	if v := ValidateContent(req.ExtractedText); !v.IsValid {
		slog.Info("content validation rejected upload", "score", v.Score, "district", req.District)
		return s.store(ctx, key, rejectedAnalysis(v))
	}

	if s.provider == nil {
		return s.store(ctx, key, mockAnalysis(req))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.provider.Complete(callCtx, models.ChatRequest{
		System:      systemPrompt,
		User:        buildAnalysisPrompt(req),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		slog.Error("upstream analysis call failed", "error", err, "provider", s.provider.Name())
		return s.store(ctx, key, errorAnalysis(req, err.Error(), s.now().UTC().Format(time.RFC3339)))
	}

	result, ok := parseAnalysis(raw)
	if !ok {
		slog.Warn("model response contained no parseable JSON, preserving raw text")
		result = fallbackAnalysis(raw)
	}

	return s.store(ctx, key, result)
}

func (s *Service) getCached(ctx context.Context, key string) (*models.AIAnalysis, bool) {
	data, found, err := s.cache.Get(ctx, key)
	if err != nil || !found {
		return nil, false
	}
	var result models.AIAnalysis
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// store caches the result and returns it. Cache failures are logged and
// swallowed; a missed cache write only costs a recompute.
func (s *Service) store(ctx context.Context, key string, result *models.AIAnalysis) *models.AIAnalysis {
	data, err := json.Marshal(result)
	if err != nil {
		slog.Warn("marshaling analysis for cache failed", "error", err)
		return result
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		slog.Warn("caching analysis failed", "key", key, "error", err)
	}
	return result
}
