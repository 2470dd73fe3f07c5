package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dshills/contractcheck/internal/document"
	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/prompt"
	"github.com/dshills/contractcheck/internal/report"
	"github.com/dshills/contractcheck/internal/schema"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

// buildOrdersReport validates the orders fixture in strict mode.
func buildOrdersReport(t *testing.T) *report.Report {
	t.Helper()
	dir := filepath.Join(projectRoot(), "testdata", "orders")

	schemaFile, err := document.Load(filepath.Join(dir, "schema.json"))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	payloadFile, err := document.Load(filepath.Join(dir, "payload.json"))
	if err != nil {
		t.Fatalf("load payload: %v", err)
	}

	r, err := report.BuildFromText(schema.NewEngine(schema.Options{}),
		schemaFile.FilePath, schemaFile.Raw, payloadFile.FilePath, payloadFile.Raw, true)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	return r
}

func TestGoldenOrdersReport(t *testing.T) {
	r := buildOrdersReport(t)

	if err := report.CheckConsistency(r); err != nil {
		t.Fatalf("inconsistent report: %v", err)
	}

	// Issues in canonical path order.
	want := []struct{ path, validator string }{
		{"", "additionalProperties"},
		{"customer", "required"},
		{"customer.name", "minLength"},
		{"id", "pattern"},
		{"items.0.qty", "minimum"},
		{"items.1.sku", "type"},
		{"total", "minimum"},
	}
	if r.IssueCount != len(want) {
		for _, iss := range r.Issues {
			t.Logf("issue: %q [%s] %s", iss.Path, iss.Validator, iss.Message)
		}
		t.Fatalf("issue_count = %d, want %d", r.IssueCount, len(want))
	}
	for i, w := range want {
		iss := r.Issues[i]
		if iss.Path != w.path || iss.Validator != w.validator {
			t.Errorf("issue %d = %q [%s], want %q [%s]", i, iss.Path, iss.Validator, w.path, w.validator)
		}
	}

	// Export round trip is byte-stable.
	data1, err := report.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	r2, err := report.Decode(data1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data2, err := report.Marshal(r2)
	if err != nil {
		t.Fatalf("second marshal: %v", err)
	}
	if !bytes.Equal(data1, data2) {
		t.Errorf("round trip changed the report:\n%s\n---\n%s", data1, data2)
	}

	// A second build is byte-identical.
	data3, err := report.Marshal(buildOrdersReport(t))
	if err != nil {
		t.Fatalf("marshal rebuild: %v", err)
	}
	if !bytes.Equal(data1, data3) {
		t.Error("rebuilding the report produced different bytes")
	}
}

func TestGoldenOrdersExplanation(t *testing.T) {
	r := buildOrdersReport(t)

	raw, err := os.ReadFile(filepath.Join(projectRoot(), "testdata", "orders", "explanation.json"))
	if err != nil {
		t.Fatalf("read explanation: %v", err)
	}

	e, err := explain.Parse(string(raw), prompt.ShapeA)
	if err != nil {
		t.Fatalf("parse explanation: %v", err)
	}
	if v := explain.Ground(e, r); len(v) != 0 {
		t.Errorf("expected a grounded explanation, got violations: %+v", v)
	}

	// Severity order after grounding.
	items := e.Items()
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Ref != "customer" || items[1].Ref != "total" || items[2].Ref != "items.0.qty" {
		t.Errorf("unexpected item order: %s, %s, %s", items[0].Ref, items[1].Ref, items[2].Ref)
	}

	counts := explain.ComputeCounts(e)
	if counts.High != 2 || counts.Medium != 1 {
		t.Errorf("counts = %+v, want 2 high and 1 medium", counts)
	}
}
