package internal

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/llm"
	"github.com/dshills/contractcheck/internal/prompt"
)

// skipUnlessIntegration skips the test unless CONTRACTCHECK_INTEGRATION=1.
func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("CONTRACTCHECK_INTEGRATION") != "1" {
		t.Skip("skipping integration test (set CONTRACTCHECK_INTEGRATION=1 to run)")
	}
}

// runExplanation asks a live model to explain the orders report and checks
// the result structurally.
func runExplanation(t *testing.T, model string, shape prompt.Shape) *explain.Explanation {
	t.Helper()

	provider, err := explain.Resolve(model, "")
	if err != nil {
		t.Fatalf("resolve provider: %v", err)
	}

	r := buildOrdersReport(t)
	opts := explain.DefaultOptions()
	opts.Model = model
	opts.Shape = shape
	opts.Timeout = 120 * time.Second

	e, err := explain.Request(context.Background(), provider, r, opts)
	if err != nil {
		t.Fatalf("explanation failed: %v", err)
	}

	if e.Summary() == "" {
		t.Error("expected a summary")
	}
	if len(e.Items()) == 0 {
		t.Error("expected at least one explained issue")
	}
	v := explain.Ground(e, r)
	for _, it := range e.Items() {
		if !it.Severity.Valid() {
			t.Errorf("invalid severity %q for %s", it.Severity, it.Ref)
		}
	}

	t.Logf("Provider: %s | Items: %d | Fixes: %d | Ungrounded: %d",
		provider.Name(), len(e.Items()), len(e.Fixes()), len(v))
	return e
}

func TestIntegrationOpenAI(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}
	runExplanation(t, "openai:gpt-4o-mini", prompt.ShapeA)
}

func TestIntegrationOpenAIShapeB(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}
	e := runExplanation(t, "openai:gpt-4o-mini", prompt.ShapeB)
	if e.B == nil {
		t.Error("expected a shape B explanation")
	}
}

func TestIntegrationAnthropic(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		t.Skip("ANTHROPIC_API_KEY not set")
	}
	runExplanation(t, "anthropic:claude-sonnet-4-6", prompt.ShapeA)
}

func TestIntegrationBadKey(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()

	p, err := llm.NewOpenAI("sk-invalid-key-for-integration-test-000000")
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	_, err = explain.Request(context.Background(), p, buildOrdersReport(t), explain.DefaultOptions())
	var re *explain.RequestError
	if err == nil {
		t.Fatal("expected an error for an invalid key")
	}
	if !errors.As(err, &re) {
		t.Errorf("expected RequestError, got %T: %v", err, err)
	}
}
