package explain

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/contractcheck/internal/llm"
)

// MissingCredentialError reports that no API key was available.
type MissingCredentialError struct{}

func (MissingCredentialError) Error() string {
	return "no API key provided: pass --api-key or set OPENAI_API_KEY / ANTHROPIC_API_KEY"
}

func (MissingCredentialError) Unwrap() error { return llm.ErrNoCredential }

// RequestError reports a failed model call: network, authentication or an
// error status from the provider.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("explanation request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// TimeoutError reports that the model did not answer in time.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("explanation request timed out after %s: %v", e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ParseError reports a response that is not a JSON object. Raw holds the
// response text.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a response that does not satisfy the output shape.
type SchemaError struct {
	Shape      Shape
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("model response does not match shape %s: %s", e.Shape, strings.Join(e.Violations, "; "))
}
