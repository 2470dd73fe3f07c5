// Package explain requests a model-written explanation of a validation report
// and checks the response against a fixed output shape.
package explain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/contractcheck/internal/prompt"
)

// Shape names the output contract an explanation follows.
type Shape = prompt.Shape

// ParseShape accepts "a" or "b" in any case.
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(strings.ToLower(strings.TrimSpace(s))); sh {
	case prompt.ShapeA, prompt.ShapeB:
		return sh, nil
	}
	return "", fmt.Errorf("unknown explanation shape %q (want a or b)", s)
}

// Severity grades an explained issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// order returns a sort key (lower = higher priority).
func (s Severity) order() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// ShapeA is the explanation with separate issue, fix and risk lists.
type ShapeA struct {
	Summary        string      `json:"summary"`
	TopIssues      []TopIssueA `json:"top_issues"`
	SuggestedFixes []Fix       `json:"suggested_fixes"`
	RiskNotes      []string    `json:"risk_notes"`
}

// TopIssueA explains one report issue by its payload path.
type TopIssueA struct {
	Path           string   `json:"path"`
	Explanation    string   `json:"explanation"`
	Severity       Severity `json:"severity"`
	BusinessImpact string   `json:"business_impact"`
}

// Fix is a suggested change. Target is "payload:/..." or "schema:/...".
type Fix struct {
	Target     string `json:"target"`
	Suggestion string `json:"suggestion"`
}

// ShapeB is the consolidated explanation: fixes are folded into the issues.
type ShapeB struct {
	Summary   string      `json:"summary"`
	TopIssues []TopIssueB `json:"top_issues"`
}

// TopIssueB explains one issue and carries its fix.
type TopIssueB struct {
	Target      string   `json:"target"`
	Severity    Severity `json:"severity"`
	Explanation string   `json:"explanation"`
	Suggestion  string   `json:"suggestion"`
}

// Explanation holds exactly one of A or B, selected by Shape.
type Explanation struct {
	Shape Shape
	A     *ShapeA
	B     *ShapeB
}

// MarshalJSON emits the active variant only.
func (e *Explanation) MarshalJSON() ([]byte, error) {
	switch {
	case e.Shape == prompt.ShapeB && e.B != nil:
		return json.Marshal(e.B)
	case e.Shape != prompt.ShapeB && e.A != nil:
		return json.Marshal(e.A)
	}
	return nil, fmt.Errorf("explain: explanation has no %q variant", e.Shape)
}

// Summary returns the summary of the active variant.
func (e *Explanation) Summary() string {
	if e.B != nil {
		return e.B.Summary
	}
	if e.A != nil {
		return e.A.Summary
	}
	return ""
}

// Item is a shape-independent view of one explained issue.
type Item struct {
	// Ref is the issue path (shape A) or target (shape B).
	Ref         string
	Severity    Severity
	Explanation string
	// Detail is the business impact (shape A) or suggestion (shape B).
	Detail string
}

// Items lists the explained issues in their current order.
func (e *Explanation) Items() []Item {
	var items []Item
	switch {
	case e.B != nil:
		for _, ti := range e.B.TopIssues {
			items = append(items, Item{ti.Target, ti.Severity, ti.Explanation, ti.Suggestion})
		}
	case e.A != nil:
		for _, ti := range e.A.TopIssues {
			items = append(items, Item{ti.Path, ti.Severity, ti.Explanation, ti.BusinessImpact})
		}
	}
	return items
}

// Fixes lists suggested fixes. Shape B has no separate fix list.
func (e *Explanation) Fixes() []Fix {
	if e.A == nil {
		return nil
	}
	return e.A.SuggestedFixes
}

// RiskNotes lists risk notes. Shape B has none.
func (e *Explanation) RiskNotes() []string {
	if e.A == nil {
		return nil
	}
	return e.A.RiskNotes
}

// Counts tallies explained issues by severity.
type Counts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ComputeCounts derives severity counts from the explained issues.
func ComputeCounts(e *Explanation) Counts {
	var c Counts
	for _, it := range e.Items() {
		switch it.Severity {
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityLow:
			c.Low++
		}
	}
	return c
}
