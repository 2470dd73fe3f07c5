package report

import (
	"fmt"

	"github.com/dshills/contractcheck/internal/document"
)

// Engine compiles schemas into validators.
type Engine interface {
	Compile(schema any) (Validator, error)
}

// Validator checks payloads against one compiled schema. Validate returns
// every failure the engine finds, not just the first. A non-nil error means
// the engine could not run, not that the payload is invalid.
type Validator interface {
	Validate(payload any) ([]RawError, error)
}

// Build validates payload against schema and assembles the report. The result
// depends only on its inputs.
func Build(e Engine, schema, payload any, strict bool) (*Report, error) {
	v, err := e.Compile(Rewrite(schema, strict))
	if err != nil {
		return nil, &SchemaCompilationError{Err: err}
	}

	errs, err := v.Validate(payload)
	if err != nil {
		return nil, fmt.Errorf("report.Build: validate: %w", err)
	}
	SortRawErrors(errs)

	issues := make([]Issue, 0, len(errs))
	for _, re := range errs {
		issues = append(issues, Normalize(re))
	}
	return newReport(issues), nil
}

// BuildFromText parses the schema and payload documents and builds the report.
// The names select the decoder (see document.DecodeBytes); parse failures are
// returned as *InputParseError.
func BuildFromText(e Engine, schemaName string, schemaText []byte, payloadName string, payloadText []byte, strict bool) (*Report, error) {
	schema, err := document.DecodeBytes(schemaName, schemaText)
	if err != nil {
		return nil, &InputParseError{Document: "schema", Err: err}
	}
	payload, err := document.DecodeBytes(payloadName, payloadText)
	if err != nil {
		return nil, &InputParseError{Document: "payload", Err: err}
	}
	return Build(e, schema, payload, strict)
}
