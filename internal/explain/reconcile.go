package explain

import (
	"github.com/dshills/contractcheck/internal/prompt"
)

// maxSummaryRunes bounds a summary derived from a free-form explanation.
const maxSummaryRunes = 240

// Reconcile reshapes the recognised alternate response form
// {"explanation": string, "fixes": [{"field", "action"}]} into the configured
// shape. Objects that carry summary or top_issues, or that have no string
// explanation, are returned unchanged for schema validation to judge.
func Reconcile(obj map[string]any, shape Shape) map[string]any {
	if _, ok := obj["summary"]; ok {
		return obj
	}
	if _, ok := obj["top_issues"]; ok {
		return obj
	}
	expl, ok := obj["explanation"].(string)
	if !ok {
		return obj
	}

	summary := truncateRunes(expl, maxSummaryRunes)
	fixes := alternateFixes(obj["fixes"])

	if shape == prompt.ShapeB {
		issues := make([]any, 0, len(fixes))
		for _, f := range fixes {
			issues = append(issues, map[string]any{
				"target":      f.Target,
				"severity":    string(SeverityMedium),
				"explanation": "",
				"suggestion":  f.Suggestion,
			})
		}
		return map[string]any{
			"summary":    summary,
			"top_issues": issues,
		}
	}

	suggested := make([]any, 0, len(fixes))
	for _, f := range fixes {
		suggested = append(suggested, map[string]any{
			"target":     f.Target,
			"suggestion": f.Suggestion,
		})
	}
	return map[string]any{
		"summary":         summary,
		"top_issues":      []any{},
		"suggested_fixes": suggested,
		"risk_notes":      []any{},
	}
}

// alternateFixes reads a "fixes" list of {field, action} objects. Entries that
// are not objects are skipped; missing members read as "".
func alternateFixes(v any) []Fix {
	list, _ := v.([]any)
	var out []Fix
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field, _ := m["field"].(string)
		action, _ := m["action"].(string)
		out = append(out, Fix{Target: "payload:/" + field, Suggestion: action})
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
