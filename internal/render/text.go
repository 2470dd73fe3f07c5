package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/report"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	passStyle     = lipgloss.NewStyle().Bold(true).Foreground(success)
	failStyle     = lipgloss.NewStyle().Bold(true).Foreground(danger)
	pathStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	keywordStyle  = lipgloss.NewStyle().Foreground(warning)
	separatorLine = lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("─", 64))

	severityStyles = map[explain.Severity]lipgloss.Style{
		explain.SeverityHigh:   lipgloss.NewStyle().Bold(true).Foreground(danger),
		explain.SeverityMedium: lipgloss.NewStyle().Bold(true).Foreground(warning),
		explain.SeverityLow:    lipgloss.NewStyle().Foreground(info),
	}
)

// Text renders a report, and the explanation when e is non-nil, for a
// terminal. Colours are dropped automatically when stdout is not a TTY.
func Text(r *report.Report, e *explain.Explanation) string {
	var b strings.Builder

	status := passStyle.Render("PASS")
	if !r.Pass {
		status = failStyle.Render("FAIL")
	}
	title := headerStyle.Render("contractcheck")
	count := dimStyle.Render(fmt.Sprintf("%d issue(s)", r.IssueCount))
	b.WriteString(boxStyle.Render(title + "  " + status + "  " + count))
	b.WriteString("\n\n")

	for i, iss := range r.Issues {
		fmt.Fprintf(&b, "%s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%3d.", i+1)),
			pathStyle.Render(displayPath(iss.Path)),
			keywordStyle.Render("["+iss.Validator+"]"))
		fmt.Fprintf(&b, "     %s\n", iss.Message)
		if iss.Expected != nil {
			fmt.Fprintf(&b, "     %s %s\n", dimStyle.Render("expected:"), FormatValue(iss.Expected))
		}
		if iss.InvalidValue != nil {
			fmt.Fprintf(&b, "     %s %s\n", dimStyle.Render("got:     "), FormatValue(iss.InvalidValue))
		}
	}

	if e == nil {
		return b.String()
	}

	b.WriteString("\n" + separatorLine + "\n")
	b.WriteString(headerStyle.Render("Explanation") + "\n")
	b.WriteString(e.Summary() + "\n\n")
	for _, it := range e.Items() {
		sev := severityStyles[it.Severity].Render(strings.ToUpper(string(it.Severity)))
		fmt.Fprintf(&b, "  %s %s  %s\n", sev, pathStyle.Render(it.Ref), it.Explanation)
		if it.Detail != "" {
			fmt.Fprintf(&b, "       %s\n", dimStyle.Render(it.Detail))
		}
	}
	for _, f := range e.Fixes() {
		fmt.Fprintf(&b, "  %s %s  %s\n", keywordStyle.Render("fix"), pathStyle.Render(f.Target), f.Suggestion)
	}
	for _, n := range e.RiskNotes() {
		fmt.Fprintf(&b, "  %s %s\n", keywordStyle.Render("risk"), n)
	}
	return b.String()
}
