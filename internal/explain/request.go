package explain

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/contractcheck/internal/llm"
	"github.com/dshills/contractcheck/internal/prompt"
	"github.com/dshills/contractcheck/internal/report"
)

// Defaults for a request. Temperature is low so repeated runs stay close.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 800
	DefaultTimeout     = 60 * time.Second
)

// Options configures one explanation request.
type Options struct {
	Model       string
	Shape       Shape
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	// MaxIssues bounds how many report issues go into the prompt.
	MaxIssues int
	Redact    bool
	Seed      *int
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Model:       DefaultModel,
		Shape:       prompt.ShapeA,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
		MaxIssues:   report.DefaultPromptIssues,
		Redact:      true,
	}
}

// Resolve picks the provider for model using the caller's apiKey, falling
// back to the environment. A missing key becomes MissingCredentialError.
func Resolve(model, apiKey string) (llm.Provider, error) {
	p, err := llm.ResolveProvider(model, apiKey)
	if errors.Is(err, llm.ErrNoCredential) {
		return nil, MissingCredentialError{}
	}
	return p, err
}

// Request asks the provider to explain the report. The call is made once;
// failures are returned as RequestError, TimeoutError, ParseError or
// SchemaError and never affect the report itself.
func Request(ctx context.Context, p llm.Provider, r *report.Report, opts Options) (*Explanation, error) {
	if p == nil {
		return nil, MissingCredentialError{}
	}
	if opts.Shape == "" {
		opts.Shape = prompt.ShapeA
	}

	text := prompt.Build(prompt.Opts{
		Report:    r,
		Shape:     opts.Shape,
		MaxIssues: opts.MaxIssues,
		Redact:    opts.Redact,
	})

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	raw, err := p.Generate(ctx, text, llm.Settings{
		Model:       opts.Model,
		System:      prompt.System,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Seed:        opts.Seed,
	})
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, &TimeoutError{Timeout: opts.Timeout, Err: err}
		case errors.Is(err, llm.ErrNoCredential):
			return nil, MissingCredentialError{}
		}
		return nil, &RequestError{Err: err}
	}
	return Parse(raw, opts.Shape)
}
