package translator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini translates through the Gemini API
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Name implements Translator
func (g *Gemini) Name() string {
	return ProviderGemini
}

// Translate implements Translator
func (g *Gemini) Translate(ctx context.Context, text, source, target string) (string, error) {
	prompt := systemPrompt + "\n\n" + userPrompt(text, source, target)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return out, nil
}
