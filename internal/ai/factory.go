package ai

import (
	"github.com/soilscope/soilscope/internal/ai/openai"
	"github.com/soilscope/soilscope/internal/config"
	"github.com/soilscope/soilscope/pkg/models"
)

// NewProvider constructs the chat provider from config. Returns nil when no
// API key is configured; the orchestrator treats a nil provider as mock
// mode and serves deterministic fallback analyses.
func NewProvider(cfg config.AIConfig) models.ChatProvider {
	if cfg.APIKey == "" {
		return nil
	}
	return openai.NewProvider(cfg)
}
