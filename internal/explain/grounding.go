package explain

import (
	"strings"

	"github.com/dshills/contractcheck/internal/report"
)

// GroundingViolation records an explained item that names no reported issue.
type GroundingViolation struct {
	Field string
	Index int
	Ref   string
}

// CheckGrounding flags top issues and payload fixes whose path or target does
// not fall under any issue path in the report. Schema targets are not checked.
func CheckGrounding(e *Explanation, r *report.Report) []GroundingViolation {
	paths := make([]string, 0, len(r.Issues))
	for _, iss := range r.Issues {
		paths = append(paths, iss.Path)
	}

	var violations []GroundingViolation
	for i, it := range e.Items() {
		ref, ok := payloadPath(it.Ref)
		if ok && !grounded(ref, paths) {
			violations = append(violations, GroundingViolation{Field: "top_issues", Index: i, Ref: it.Ref})
		}
	}
	for i, f := range e.Fixes() {
		ref, ok := payloadPath(f.Target)
		if ok && !grounded(ref, paths) {
			violations = append(violations, GroundingViolation{Field: "suggested_fixes", Index: i, Ref: f.Target})
		}
	}
	return violations
}

// payloadPath converts an explanation reference to a report path. Targets of
// the form "payload:/a/0/b" become "a.0.b"; bare references are taken as
// report paths. "schema:" targets are not payload references.
func payloadPath(ref string) (string, bool) {
	switch {
	case strings.HasPrefix(ref, "schema:"):
		return "", false
	case strings.HasPrefix(ref, "payload:"):
		p := strings.Trim(strings.TrimPrefix(ref, "payload:"), "/")
		return strings.ReplaceAll(p, "/", "."), true
	}
	return ref, true
}

// grounded reports whether ref equals a report path or lies beneath one.
func grounded(ref string, paths []string) bool {
	for _, p := range paths {
		if p == "" || ref == p || strings.HasPrefix(ref, p+".") {
			return true
		}
	}
	return false
}

// ApplyGroundingDowngrades lowers ungrounded high-severity top issues to medium.
func ApplyGroundingDowngrades(e *Explanation, violations []GroundingViolation) {
	for _, v := range violations {
		if v.Field != "top_issues" {
			continue
		}
		switch {
		case e.A != nil && v.Index < len(e.A.TopIssues):
			if e.A.TopIssues[v.Index].Severity == SeverityHigh {
				e.A.TopIssues[v.Index].Severity = SeverityMedium
			}
		case e.B != nil && v.Index < len(e.B.TopIssues):
			if e.B.TopIssues[v.Index].Severity == SeverityHigh {
				e.B.TopIssues[v.Index].Severity = SeverityMedium
			}
		}
	}
}

// Ground runs the grounding check, downgrades what it flags and orders the
// top issues. The returned violations index the items before sorting.
func Ground(e *Explanation, r *report.Report) []GroundingViolation {
	violations := CheckGrounding(e, r)
	ApplyGroundingDowngrades(e, violations)
	SortTopIssues(e)
	return violations
}
