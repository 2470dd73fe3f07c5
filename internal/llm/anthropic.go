package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	anthropicAPIURL       = "https://api.anthropic.com/v1/messages"
	anthropicDefaultModel = "claude-sonnet-4-6"
	anthropicAPIVersion   = "2023-06-01"
)

// AnthropicProvider calls the Messages API. The system prompt goes in the
// request's system field.
type AnthropicProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewAnthropic creates an Anthropic provider for the caller's API key.
func NewAnthropic(apiKey string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrNoCredential)
	}
	return &AnthropicProvider{apiKey: apiKey, apiURL: anthropicAPIURL, client: &http.Client{}}, nil
}

func (a *AnthropicProvider) Name() string { return "anthropic" }

func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = anthropicDefaultModel
	}
	limit := maxTokens(s)
	temperature := s.Temperature

	in := anthropicRequest{
		Model:       model,
		MaxTokens:   limit,
		System:      s.System,
		Temperature: &temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	}
	headers := http.Header{
		"X-API-Key":         {a.apiKey},
		"Anthropic-Version": {anthropicAPIVersion},
	}

	var out anthropicResponse
	if err := postJSON(ctx, a.client, "anthropic", a.apiURL, headers, in, &out); err != nil {
		return "", err
	}

	if out.StopReason == "max_tokens" {
		return "", fmt.Errorf("anthropic: response truncated at %d tokens", limit)
	}
	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic: no text content in response")
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
