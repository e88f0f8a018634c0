package llm

import (
	"context"
	"fmt"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Completer sends a single prompt to a hosted model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Keys struct {
	Gemini      string
	GeminiModel string
	OpenAI      string
	Anthropic   string
}

func NewCompleter(ctx context.Context, provider string, keys Keys) (Completer, error) {
	switch provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, keys.Gemini, keys.GeminiModel)
	case ProviderOpenAI:
		if keys.OpenAI == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		return NewOpenAIClient(keys.OpenAI), nil
	case ProviderAnthropic:
		if keys.Anthropic == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		return NewAnthropicClient(keys.Anthropic), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", provider)
}
