// Package llm defines the provider interface and implementations for LLM interaction.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoCredential is returned when no API key is available for a provider.
var ErrNoCredential = errors.New("no API key provided")

// Settings configures the LLM request.
type Settings struct {
	Model string
	// System is sent as the system message when non-empty.
	System      string
	Temperature float64
	MaxTokens   int
	Seed        *int
}

// Provider generates text from a prompt using an LLM.
type Provider interface {
	Generate(ctx context.Context, prompt string, settings Settings) (string, error)
	Name() string
}

// StatusError is returned when a provider API answers with a non-200 status.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("%s: API returned %d: %s", e.Provider, e.Code, body)
}
