// Package mock provides a scriptable ChatProvider for tests.
package mock

import (
	"context"

	"github.com/soilscope/soilscope/pkg/models"
)

// MockProvider satisfies models.ChatProvider for testing.
type MockProvider struct {
	Name_        string
	CompleteFunc func(ctx context.Context, req models.ChatRequest) (string, error)
	Calls        int
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	m.Calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

// NewMockProvider returns a MockProvider that replies with a small valid
// analysis JSON object wrapped in prose, mimicking real model output.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		CompleteFunc: func(_ context.Context, _ models.ChatRequest) (string, error) {
			return "Here is the analysis you requested:\n" +
				`{"recommendations":[{"crop":"Wheat","suitability":88,"reason":"Suits the soil profile"}],` +
				`"overallScore":80,"additionalTips":["Irrigate at dawn"]}` +
				"\nLet me know if you need more detail.", nil
		},
	}
}

// NewStaticProvider returns a MockProvider that always replies with text.
func NewStaticProvider(text string) *MockProvider {
	return &MockProvider{
		Name_: "mock-static",
		CompleteFunc: func(_ context.Context, _ models.ChatRequest) (string, error) {
			return text, nil
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		CompleteFunc: func(_ context.Context, _ models.ChatRequest) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock-timeout",
		CompleteFunc: func(ctx context.Context, _ models.ChatRequest) (string, error) {
			<-ctx.Done()
			return "", models.ErrInferenceTimeout
		},
	}
}

// Compile-time check that MockProvider implements ChatProvider.
var _ models.ChatProvider = (*MockProvider)(nil)
