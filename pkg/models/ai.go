package models

import (
	"context"
	"errors"
)

// Sentinel errors shared by all chat providers. The analysis orchestrator
// matches on these to decide between degraded fallback variants. They live
// next to ChatProvider so provider packages depend only on this package.
var (
	ErrProviderUnavailable = errors.New("chat provider unavailable")
	ErrInferenceTimeout    = errors.New("chat completion timed out")
	ErrInvalidResponse     = errors.New("chat provider returned an unusable response")
)

// ChatProvider is the core interface all AI integrations must implement.
// Never call a specific provider directly — always inject this interface.
type ChatProvider interface {
	// Complete sends a system + user message pair and returns the raw
	// response text. The response is not trusted to be pure JSON; callers
	// are responsible for locating and parsing any structured payload.
	Complete(ctx context.Context, req ChatRequest) (string, error)
	// Name returns the provider identifier (e.g., "openai", "mock").
	Name() string
}

// ChatRequest is a chat-completion style request with bounded output.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}
