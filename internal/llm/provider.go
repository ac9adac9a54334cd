package llm

import "context"

// Provider defines the interface for generative backends
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Generate produces free-form text from a free-form instruction
	Generate(ctx context.Context, prompt string, model string) (string, error)
}
