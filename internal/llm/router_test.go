package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nzambu/coachsim/internal/llm"
)

type stubProvider struct {
	name       string
	configured bool
	failures   int
	calls      int
}

func (p *stubProvider) Name() string              { return p.name }
func (p *stubProvider) AvailableModels() []string { return nil }
func (p *stubProvider) DefaultModel() string      { return "" }
func (p *stubProvider) IsConfigured() bool        { return p.configured }

func (p *stubProvider) Generate(ctx context.Context, prompt, model string) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", errors.New("transient failure")
	}
	return "ok", nil
}

func TestRouter_Generate_RetriesOnce(t *testing.T) {
	provider := &stubProvider{name: "stub", configured: true, failures: 1}
	router := llm.NewRouter("stub", time.Second)
	router.RegisterProvider(provider)

	out, err := router.Generate(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, provider.calls)
}

func TestRouter_Generate_FailsAfterRetry(t *testing.T) {
	provider := &stubProvider{name: "stub", configured: true, failures: 5}
	router := llm.NewRouter("stub", time.Second)
	router.RegisterProvider(provider)

	_, err := router.Generate(context.Background(), "prompt")

	assert.Error(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestRouter_Generate_UnconfiguredProvider(t *testing.T) {
	router := llm.NewRouter("stub", time.Second)
	router.RegisterProvider(&stubProvider{name: "stub", configured: false})

	_, err := router.Generate(context.Background(), "prompt")

	assert.Error(t, err)
}

func TestRouter_Generate_CancelledContext(t *testing.T) {
	provider := &stubProvider{name: "stub", configured: true}
	router := llm.NewRouter("stub", time.Second)
	router.RegisterProvider(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := router.Generate(ctx, "prompt")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.calls)
}
