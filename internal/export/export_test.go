package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/prompt"
	"github.com/dshills/contractcheck/internal/report"
)

func TestWriteReportRoundTrip(t *testing.T) {
	r := &report.Report{Pass: false, IssueCount: 1, Issues: []report.Issue{{
		Message: "missing properties: 'id'", Path: "", SchemaPath: "required",
		Validator: "required", Expected: []any{"id"},
	}}}
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteReport(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := report.Decode(data)
	require.NoError(t, err)
	require.NoError(t, report.CheckConsistency(back))

	again, err := report.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestWriteReportDefaultName(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, WriteReport("", &report.Report{Pass: true, Issues: []report.Issue{}}))
	_, err := os.Stat(DefaultReportName)
	assert.NoError(t, err)
}

func TestWriteReportBadPath(t *testing.T) {
	err := WriteReport(filepath.Join(t.TempDir(), "missing", "out.json"), &report.Report{})
	assert.Error(t, err)
}

func TestWriteExplanation(t *testing.T) {
	e := &explain.Explanation{Shape: prompt.ShapeB, B: &explain.ShapeB{
		Summary:   "s",
		TopIssues: []explain.TopIssueB{{Target: "payload:/a", Severity: explain.SeverityLow, Explanation: "e", Suggestion: "x"}},
	}}
	path := filepath.Join(t.TempDir(), "explain.json")
	require.NoError(t, WriteExplanation(path, e))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"s","top_issues":[{"target":"payload:/a","severity":"low","explanation":"e","suggestion":"x"}]}`, string(data))
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestWriteExplanationEmptyVariant(t *testing.T) {
	err := WriteExplanation(filepath.Join(t.TempDir(), "x.json"), &explain.Explanation{Shape: prompt.ShapeA})
	assert.Error(t, err)
}
