package report

import "fmt"

// InputParseError reports that the schema or payload text is not valid JSON.
type InputParseError struct {
	// Document is "schema" or "payload".
	Document string
	Err      error
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %v", e.Document, e.Err)
}

func (e *InputParseError) Unwrap() error { return e.Err }

// SchemaCompilationError reports that the validation engine rejected the
// effective schema. It is distinct from a payload failing validation.
type SchemaCompilationError struct {
	Err error
}

func (e *SchemaCompilationError) Error() string {
	return fmt.Sprintf("schema compilation failed: %v", e.Err)
}

func (e *SchemaCompilationError) Unwrap() error { return e.Err }
