package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Router manages generative providers and wraps every call with an
// explicit timeout and a single bounded retry. Conversation state is
// never touched by callers until a call fully succeeds.
type Router struct {
	providers       map[string]Provider
	defaultProvider string
	timeout         time.Duration
	mu              sync.RWMutex
}

// NewRouter creates a new provider router
func NewRouter(defaultProvider string, timeout time.Duration) *Router {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Router{
		providers:       make(map[string]Provider),
		defaultProvider: defaultProvider,
		timeout:         timeout,
	}
}

// RegisterProvider registers a provider
func (r *Router) RegisterProvider(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// GetProvider returns a provider by name
func (r *Router) GetProvider(name string) (Provider, error) {
	if name == "" {
		name = r.defaultProvider
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}

	if !p.IsConfigured() {
		return nil, fmt.Errorf("provider not configured: %s", name)
	}

	return p, nil
}

// ListProviders returns the names of configured providers
func (r *Router) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, p := range r.providers {
		if p.IsConfigured() {
			names = append(names, name)
		}
	}
	return names
}

// DefaultProvider returns the default provider name
func (r *Router) DefaultProvider() string {
	return r.defaultProvider
}

// Generate runs one instruction through the default provider. Each attempt
// gets its own timeout; a single retry covers transient backend failures.
// The parent context still cancels both attempts.
func (r *Router) Generate(ctx context.Context, prompt string) (string, error) {
	p, err := r.GetProvider("")
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		out, err := p.Generate(callCtx, prompt, "")
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%s generation failed: %w", p.Name(), lastErr)
}
