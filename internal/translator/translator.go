// Package translator holds the external translation providers that the
// terminology engine delegates to. Providers see only placeholder-protected
// text and must return every token unchanged.
package translator

import (
	"context"
	"fmt"
	"strings"

	"nkrane/internal/config"

	"go.uber.org/zap"
)

// Translator translates text from source to target language
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
	Name() string
}

// Func adapts a plain function to Translator
type Func func(ctx context.Context, text, source, target string) (string, error)

// Translate calls f
func (f Func) Translate(ctx context.Context, text, source, target string) (string, error) {
	return f(ctx, text, source, target)
}

// Name implements Translator
func (f Func) Name() string {
	return "func"
}

// Identity returns text unchanged. It is useful to inspect placeholder
// substitution without calling a provider.
type Identity struct{}

// Translate implements Translator
func (Identity) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return text, nil
}

// Name implements Translator
func (Identity) Name() string {
	return "identity"
}

const (
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	ProviderIdentity = "identity"
)

// New builds the provider selected by cfg and wraps it in a circuit breaker
func New(ctx context.Context, cfg config.TranslatorConfig, logger *zap.Logger) (Translator, error) {
	var (
		provider Translator
		err      error
	)

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		provider, err = NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	case ProviderGemini:
		provider, err = NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
	case ProviderIdentity:
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("unknown translator provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Translator configured",
		zap.String("provider", provider.Name()),
		zap.Uint32("breaker_max_failures", cfg.BreakerMaxFailures),
		zap.Duration("breaker_timeout", cfg.BreakerTimeout),
	)

	return NewBreaker(provider, cfg.BreakerMaxFailures, cfg.BreakerTimeout, logger), nil
}

// systemPrompt instructs a language model to keep placeholder tokens intact
const systemPrompt = "You are a professional translator. Translate the user's text accurately, " +
	"keeping its meaning, tone and formatting. The text may contain placeholder tokens made of " +
	"upper-case letters around a number, such as NKRZ0ZQX. Copy every such token exactly as it " +
	"appears, never translate, split, or drop it. Respond with the translation only."

func userPrompt(text, source, target string) string {
	return fmt.Sprintf("Translate from %s to %s:\n\n%s", languageLabel(source), languageLabel(target), text)
}

func languageLabel(code string) string {
	if code == "" || code == "auto" {
		return "the detected language"
	}
	return fmt.Sprintf("the language with code %q", code)
}
