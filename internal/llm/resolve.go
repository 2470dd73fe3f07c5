package llm

import (
	"context"
	"os"
	"strings"
)

// ResolveProvider selects an LLM provider from the model name. apiKey is the
// caller's credential; when empty, the provider's environment variable is
// used. The key is held only by the returned provider.
func ResolveProvider(model, apiKey string) (Provider, error) {
	lower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lower, "anthropic:"):
		return anthropicFor(model[len("anthropic:"):], apiKey)
	case strings.HasPrefix(lower, "claude"):
		return anthropicFor(model, apiKey)
	case strings.HasPrefix(lower, "openai:"):
		return openaiFor(model[len("openai:"):], apiKey)
	case strings.HasPrefix(lower, "gpt"), isOpenAIReasoning(lower):
		return openaiFor(model, apiKey)
	}

	// Unknown or empty model: pick the provider from the available key.
	if apiKey != "" {
		if strings.HasPrefix(apiKey, "sk-ant-") {
			return anthropicFor(model, apiKey)
		}
		return openaiFor(model, apiKey)
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return openaiFor(model, "")
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return anthropicFor(model, "")
	}
	return nil, ErrNoCredential
}

// isOpenAIReasoning matches o-series model names such as "o1" or "o3-mini".
func isOpenAIReasoning(model string) bool {
	return len(model) >= 2 && model[0] == 'o' && model[1] >= '0' && model[1] <= '9'
}

func openaiFor(model, apiKey string) (Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	p, err := NewOpenAI(apiKey)
	if err != nil {
		return nil, err
	}
	return withModel(p, model), nil
}

func anthropicFor(model, apiKey string) (Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	p, err := NewAnthropic(apiKey)
	if err != nil {
		return nil, err
	}
	return withModel(p, model), nil
}

func withModel(p Provider, model string) Provider {
	if model == "" {
		return p
	}
	return &modelOverride{Provider: p, model: model}
}

// modelOverride wraps a provider to override the model in settings.
type modelOverride struct {
	Provider
	model string
}

func (m *modelOverride) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	s.Model = m.model
	return m.Provider.Generate(ctx, prompt, s)
}
