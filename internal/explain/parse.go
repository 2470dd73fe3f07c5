package explain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/contractcheck/internal/llm"
	"github.com/dshills/contractcheck/internal/prompt"
)

// Parse turns raw model output into an Explanation of the given shape. A
// Markdown code fence around the JSON is tolerated. The alternate response
// form is reshaped before the output schema is checked.
func Parse(raw string, shape Shape) (*Explanation, error) {
	text := llm.ExtractJSON(raw)

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Raw: raw, Err: errors.New("unexpected data after JSON value")}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("expected a JSON object, got %T", v)}
	}

	obj = Reconcile(obj, shape)

	violations, err := Check(obj, shape)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &SchemaError{Shape: shape, Violations: violations}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("explain.Parse: %w", err)
	}
	e := &Explanation{Shape: shape}
	if shape == prompt.ShapeB {
		e.B = &ShapeB{}
		err = json.Unmarshal(data, e.B)
	} else {
		e.Shape = prompt.ShapeA
		e.A = &ShapeA{}
		err = json.Unmarshal(data, e.A)
	}
	if err != nil {
		return nil, fmt.Errorf("explain.Parse: %w", err)
	}
	normalize(e)
	return e, nil
}

// normalize replaces nil lists so the explanation marshals with [] not null.
func normalize(e *Explanation) {
	if e.A != nil {
		if e.A.TopIssues == nil {
			e.A.TopIssues = []TopIssueA{}
		}
		if e.A.SuggestedFixes == nil {
			e.A.SuggestedFixes = []Fix{}
		}
		if e.A.RiskNotes == nil {
			e.A.RiskNotes = []string{}
		}
	}
	if e.B != nil && e.B.TopIssues == nil {
		e.B.TopIssues = []TopIssueB{}
	}
}
