package ai

import (
	"context"
)

// Provider is a generative model backend
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "openai", "ollama")
	Name() string

	// Complete sends one request and returns the generated content.
	// Implementations must not retry.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// DefaultModel returns the model used when a request names none
	DefaultModel() string

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	// HealthCheck verifies provider connectivity and status
	HealthCheck(ctx context.Context) error

	// Close cleans up provider resources
	Close() error
}

// ModelLister is implemented by providers that can enumerate models
type ModelLister interface {
	ListModels(ctx context.Context) ([]Model, error)
}
