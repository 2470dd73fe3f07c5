// Package report builds deterministic validation reports for a payload checked
// against a JSON Schema.
package report

import (
	"strconv"
	"strings"
)

// Segment is one step of a payload location: an object property or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a property segment.
func Key(name string) Segment { return Segment{Key: name} }

// Index returns an array index segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// JoinPath renders a payload location for display. The root location is "".
func JoinPath(segs []Segment) string {
	if len(segs) == 0 {
		return ""
	}
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// JoinSchemaPath renders a schema keyword location for display.
func JoinSchemaPath(segs []string) string {
	return strings.Join(segs, "/")
}

// Issue is one normalized schema-validation failure.
type Issue struct {
	Message      string `json:"message"`
	Path         string `json:"path"`
	SchemaPath   string `json:"schema_path"`
	Validator    string `json:"validator"`
	Expected     any    `json:"expected"`
	InvalidValue any    `json:"invalid_value"`
}

// Report is the aggregate outcome of validating one payload against one schema.
type Report struct {
	Pass       bool    `json:"pass"`
	IssueCount int     `json:"issue_count"`
	Issues     []Issue `json:"issues"`
}

func newReport(issues []Issue) *Report {
	if issues == nil {
		issues = []Issue{}
	}
	return &Report{
		Pass:       len(issues) == 0,
		IssueCount: len(issues),
		Issues:     issues,
	}
}
