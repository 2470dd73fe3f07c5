package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	openaiAPIURL       = "https://api.openai.com/v1/chat/completions"
	openaiDefaultModel = "gpt-4o-mini"
)

// OpenAIProvider calls the Chat Completions API in JSON mode.
type OpenAIProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewOpenAI creates an OpenAI provider for the caller's API key.
func NewOpenAI(apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrNoCredential)
	}
	return &OpenAIProvider{apiKey: apiKey, apiURL: openaiAPIURL, client: &http.Client{}}, nil
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = openaiDefaultModel
	}
	limit := maxTokens(s)

	messages := make([]openaiMessage, 0, 2)
	if s.System != "" {
		messages = append(messages, openaiMessage{Role: "system", Content: s.System})
	}
	messages = append(messages, openaiMessage{Role: "user", Content: prompt})

	in := openaiRequest{
		Model:          model,
		MaxTokens:      limit,
		Temperature:    s.Temperature,
		Seed:           s.Seed,
		Messages:       messages,
		ResponseFormat: &openaiResponseFormat{Type: "json_object"},
	}
	headers := http.Header{"Authorization": {"Bearer " + o.apiKey}}

	var out openaiResponse
	if err := postJSON(ctx, o.client, "openai", o.apiURL, headers, in, &out); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}
	choice := out.Choices[0]
	if choice.FinishReason == "length" {
		return "", fmt.Errorf("openai: response truncated at %d tokens", limit)
	}
	return choice.Message.Content, nil
}

type openaiRequest struct {
	Model          string                `json:"model"`
	MaxTokens      int                   `json:"max_tokens"`
	Temperature    float64               `json:"temperature"`
	Seed           *int                  `json:"seed,omitempty"`
	Messages       []openaiMessage       `json:"messages"`
	ResponseFormat *openaiResponseFormat `json:"response_format,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponseFormat struct {
	Type string `json:"type"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message      openaiMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}
