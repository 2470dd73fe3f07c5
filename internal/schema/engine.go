// Package schema adapts the JSON Schema engine to the report builder.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dshills/contractcheck/internal/report"
)

// resourceURL names the in-memory schema resource. Nothing is fetched from it.
const resourceURL = "mem://contractcheck/schema.json"

// Options configures schema compilation.
type Options struct {
	// AssertFormat makes "format" an assertion instead of an annotation.
	AssertFormat bool
}

// Engine compiles draft 2020-12 schemas. A "$schema" keyword in the document
// selects another draft.
type Engine struct {
	opts Options
}

// NewEngine returns an Engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Compile validates the schema document against its meta-schema and compiles
// it. Remote references are refused so compilation never performs I/O.
func (e *Engine) Compile(doc any) (report.Validator, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	// Keep a canonical copy for resolving keyword values later.
	canonical, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = e.opts.AssertFormat
	if !e.opts.AssertFormat {
		// Draft 2020-12 metaschemas enable format-assertion, which the engine
		// honours regardless of AssertFormat. Registered formats take
		// precedence over the built-in ones.
		for name := range jsonschema.Formats {
			c.Formats[name] = annotateOnly
		}
	}
	c.LoadURL = func(s string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("loading %s: remote references are not supported", s)
	}
	if err := c.AddResource(resourceURL, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: sch, doc: canonical, roots: rootURLs(canonical)}, nil
}

// Validator validates payloads against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
	doc    any
	roots  map[string]bool
}

// Validate returns every reportable failure of payload. Payload values must be
// JSON values as produced by encoding/json.
func (v *Validator) Validate(payload any) ([]report.RawError, error) {
	err := v.schema.Validate(payload)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var out []report.RawError
	v.collect(ve, payload, &out)
	return out, nil
}

// collect flattens the engine's error tree. Wrapper errors ($ref, allOf, the
// root "doesn't validate" error) are replaced by their causes. Combinator
// failures whose causes are alternatives are reported once.
func (v *Validator) collect(ve *jsonschema.ValidationError, payload any, out *[]report.RawError) {
	if len(ve.Causes) == 0 || (ve.Message != "" && terminal[keywordOf(ve)]) {
		*out = append(*out, v.newError(ve, payload))
		return
	}
	for _, c := range ve.Causes {
		v.collect(c, payload, out)
	}
}

func annotateOnly(any) bool { return true }

var terminal = map[string]bool{
	"anyOf":       true,
	"oneOf":       true,
	"contains":    true,
	"minContains": true,
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// rootURLs lists the locations that refer to the top of the schema document.
func rootURLs(doc any) map[string]bool {
	roots := map[string]bool{resourceURL: true}
	if m, ok := doc.(map[string]any); ok {
		if id, ok := m["$id"].(string); ok && id != "" {
			u, _ := fragment(id)
			roots[u] = true
		}
	}
	return roots
}
