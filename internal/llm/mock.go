package llm

import "context"

// MockProvider is a test double that returns a canned response and records
// what it was asked.
type MockProvider struct {
	Response string
	Err      error

	Calls        int
	LastPrompt   string
	LastSettings Settings
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, prompt string, s Settings) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastSettings = s
	return m.Response, m.Err
}
