// Package prompt builds the explanation prompt for a validation report.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/contractcheck/internal/redact"
	"github.com/dshills/contractcheck/internal/report"
)

// System is the system message sent with every explanation request.
const System = "Return ONLY valid JSON. No markdown."

// Shape selects the output contract the prompt asks for.
type Shape string

const (
	ShapeA Shape = "a"
	ShapeB Shape = "b"
)

// Opts configures prompt construction.
type Opts struct {
	Report    *report.Report
	Shape     Shape
	MaxIssues int
	// Redact scrubs secrets from issue messages and payload values.
	Redact bool
}

// Build assembles the explanation prompt. The output depends only on opts.
func Build(opts Opts) string {
	var b strings.Builder

	// 1. Role
	b.WriteString("You are an assistant helping a developer understand JSON Schema validation errors.\n")
	b.WriteString("Given the validation issues, produce a concise explanation and practical fixes.\n\n")

	// 2. Output contract
	b.WriteString("IMPORTANT OUTPUT FORMAT (MUST FOLLOW EXACTLY):\n")
	b.WriteString("Return ONLY valid JSON with these top-level keys:\n")
	if opts.Shape == ShapeB {
		b.WriteString(shapeBKeys)
	} else {
		b.WriteString(shapeAKeys)
	}
	b.WriteString("Do not include any other keys.\n\n")

	// 3. Example
	b.WriteString("Example output:\n")
	if opts.Shape == ShapeB {
		b.WriteString(shapeBExample)
	} else {
		b.WriteString(shapeAExample)
	}
	b.WriteString("\n")

	// 4. Rules
	b.WriteString(`Rules:
- Output MUST be valid JSON.
- Do not invent fields that are not supported by the issues.
- Refer to issues by the path given in each issue.
- Keep the summary short.

Guidelines:
- When available, explicitly include invalid_value and expected in the explanation.
`)

	// 5. Issues
	issues := report.Head(opts.Report, opts.MaxIssues)
	if opts.Redact {
		issues = scrub(issues)
	}
	fmt.Fprintf(&b, "VALIDATION_ISSUES:\n%s\n", encodeIssues(issues))

	return b.String()
}

func encodeIssues(issues []report.Issue) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(issues); err != nil {
		// Issues hold decoded JSON values only.
		return "[]"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// scrub redacts issue text and values. A value whose own field name looks
// sensitive is dropped whole.
func scrub(issues []report.Issue) []report.Issue {
	out := make([]report.Issue, len(issues))
	for i, iss := range issues {
		iss.Message = redact.Redact(iss.Message)
		field := iss.Path[strings.LastIndexByte(iss.Path, '.')+1:]
		if iss.InvalidValue != nil && redact.SensitiveKey(field) {
			iss.InvalidValue = redact.Marker
		} else {
			iss.InvalidValue = redact.Value(iss.InvalidValue)
		}
		out[i] = iss
	}
	return out
}

const shapeAKeys = `- summary (string)
- top_issues (array of objects: path, explanation, severity, business_impact)
- suggested_fixes (array of objects: target, suggestion)
- risk_notes (array of strings)
severity is one of: low, medium, high.
`

const shapeAExample = `{
  "summary": "Short summary...",
  "top_issues": [
    {"path":"customer.email","explanation":"...","severity":"high","business_impact":"..."}
  ],
  "suggested_fixes": [
    {"target":"payload:/customer/email","suggestion":"Provide a valid email address."}
  ],
  "risk_notes": ["..."]
}
`

const shapeBKeys = `- summary (string)
- top_issues (array of objects: target, severity, explanation, suggestion)
severity is one of: low, medium, high.
`

const shapeBExample = `{
  "summary": "Short summary...",
  "top_issues": [
    {"target":"payload:/customer/email","severity":"high","explanation":"...","suggestion":"Provide a valid email address."}
  ]
}
`
