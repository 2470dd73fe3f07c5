// Package render produces Markdown and terminal output from a validation report.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/report"
)

// Markdown renders a report, and the explanation when e is non-nil, as a
// Markdown document. Explained items that name no reported issue are marked
// unverified.
func Markdown(r *report.Report, e *explain.Explanation) string {
	var b strings.Builder

	// Summary
	b.WriteString("# Contract Check Report\n\n")
	fmt.Fprintf(&b, "**Result:** %s\n", verdict(r))
	fmt.Fprintf(&b, "**Issues:** %d\n\n", r.IssueCount)

	if len(r.Issues) == 0 {
		b.WriteString("No issues found.\n\n")
	} else {
		b.WriteString("## Issues\n\n")
		for i, iss := range r.Issues {
			renderIssue(&b, i+1, iss)
		}
	}

	if e != nil {
		renderExplanation(&b, r, e)
	}
	return b.String()
}

func renderIssue(b *strings.Builder, n int, iss report.Issue) {
	fmt.Fprintf(b, "### %d. `%s` [%s]\n\n", n, displayPath(iss.Path), iss.Validator)
	fmt.Fprintf(b, "%s\n\n", iss.Message)
	fmt.Fprintf(b, "- **Schema path:** `%s`\n", iss.SchemaPath)
	if iss.Expected != nil {
		fmt.Fprintf(b, "- **Expected:** `%s`\n", FormatValue(iss.Expected))
	}
	if iss.InvalidValue != nil {
		fmt.Fprintf(b, "- **Invalid value:** `%s`\n", FormatValue(iss.InvalidValue))
	}
	b.WriteString("\n")
}

func renderExplanation(b *strings.Builder, r *report.Report, e *explain.Explanation) {
	unverified := make(map[string]bool)
	for _, v := range explain.CheckGrounding(e, r) {
		unverified[fmt.Sprintf("%s/%d", v.Field, v.Index)] = true
	}

	b.WriteString("## Explanation\n\n")
	fmt.Fprintf(b, "%s\n\n", e.Summary())

	detail := "Impact"
	if e.B != nil {
		detail = "Suggestion"
	}
	if items := e.Items(); len(items) > 0 {
		b.WriteString("### Top Issues\n\n")
		for i, it := range items {
			fmt.Fprintf(b, "- **[%s]** `%s`: %s", it.Severity, it.Ref, it.Explanation)
			if unverified[fmt.Sprintf("top_issues/%d", i)] {
				b.WriteString(" _(unverified)_")
			}
			b.WriteString("\n")
			if it.Detail != "" {
				fmt.Fprintf(b, "  - %s: %s\n", detail, it.Detail)
			}
		}
		b.WriteString("\n")
	}

	if fixes := e.Fixes(); len(fixes) > 0 {
		b.WriteString("### Suggested Fixes\n\n")
		for i, f := range fixes {
			fmt.Fprintf(b, "- `%s`: %s", f.Target, f.Suggestion)
			if unverified[fmt.Sprintf("suggested_fixes/%d", i)] {
				b.WriteString(" _(unverified)_")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if notes := e.RiskNotes(); len(notes) > 0 {
		b.WriteString("### Risk Notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(b, "- %s\n", n)
		}
		b.WriteString("\n")
	}
}

func verdict(r *report.Report) string {
	if r.Pass {
		return "PASS"
	}
	return "FAIL"
}

// displayPath names the payload root, whose path is empty.
func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

// FormatValue renders a JSON value compactly for display.
func FormatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	s := string(data)
	if len(s) > 120 {
		s = s[:117] + "..."
	}
	return s
}
