package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/nzambu/coachsim/internal/config"
)

type Provider struct {
	apiKey string
	model  string

	mu         sync.Mutex
	discovered string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return ""
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) Generate(ctx context.Context, prompt string, model string) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	if model == "" {
		model = p.DefaultModel()
	}
	if model == "" {
		model, err = p.resolveModel(ctx, client)
		if err != nil {
			return "", err
		}
	}

	resp, err := client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	return output, nil
}

// resolveModel picks the first advertised model supporting text
// generation, preferring the fast tier. The result is cached for the
// lifetime of the provider.
func (p *Provider) resolveModel(ctx context.Context, client *genai.Client) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.discovered != "" {
		return p.discovered, nil
	}

	var first string
	it := client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to list gemini models: %w", err)
		}

		supported := false
		for _, method := range info.SupportedGenerationMethods {
			if method == "generateContent" {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}

		name := strings.TrimPrefix(info.Name, "models/")
		if strings.Contains(name, "flash") {
			p.discovered = name
			return name, nil
		}
		if first == "" {
			first = name
		}
	}

	if first == "" {
		return "", fmt.Errorf("no gemini model supports text generation")
	}

	p.discovered = first
	return first, nil
}
