package explain

import "sort"

// SortTopIssues orders explained issues by severity (high > medium > low),
// then by path or target.
func SortTopIssues(e *Explanation) {
	if e.A != nil {
		issues := e.A.TopIssues
		sort.SliceStable(issues, func(i, j int) bool {
			oi, oj := issues[i].Severity.order(), issues[j].Severity.order()
			if oi != oj {
				return oi < oj
			}
			return issues[i].Path < issues[j].Path
		})
	}
	if e.B != nil {
		issues := e.B.TopIssues
		sort.SliceStable(issues, func(i, j int) bool {
			oi, oj := issues[i].Severity.order(), issues[j].Severity.order()
			if oi != oj {
				return oi < oj
			}
			return issues[i].Target < issues[j].Target
		})
	}
}
