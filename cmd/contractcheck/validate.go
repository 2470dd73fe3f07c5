package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/contractcheck/internal/document"
	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/export"
	"github.com/dshills/contractcheck/internal/render"
	"github.com/dshills/contractcheck/internal/report"
	"github.com/dshills/contractcheck/internal/schema"
)

type validateFlags struct {
	runFlags

	schemaPath   string
	payloadPath  string
	strict       bool
	assertFormat bool
	reportOut    string
	explain      bool
	explainOut   string
	failOnIssues bool
}

func newValidateCmd() *cobra.Command {
	f := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate --schema <file> --payload <file>",
		Short: "Validate a payload against a JSON Schema and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.setup(cmd)
			if err != nil {
				return err
			}
			defer f.log.Sync()
			if !cmd.Flags().Changed("strict") {
				f.strict = cfg.Strict
			}
			if !cmd.Flags().Changed("assert-format") {
				f.assertFormat = cfg.AssertFormat
			}
			return runValidate(cmd.Context(), f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.schemaPath, "schema", "", "JSON Schema file (.json, .yaml or .yml)")
	flags.StringVar(&f.payloadPath, "payload", "", "Payload file (.json, .yaml or .yml)")
	flags.BoolVar(&f.strict, "strict", true, "Reject top-level properties the schema does not declare")
	flags.BoolVar(&f.assertFormat, "assert-format", false, "Treat the format keyword as an assertion")
	flags.StringVar(&f.reportOut, "report-out", "", "Also export the JSON report to this file")
	flags.BoolVar(&f.explain, "explain", false, "Ask a model to explain a failing report")
	flags.StringVar(&f.explainOut, "explain-out", "", "Write the explanation JSON to this file")
	flags.BoolVar(&f.failOnIssues, "fail-on-issues", false, "Exit 2 when the payload does not conform")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func runValidate(ctx context.Context, f *validateFlags, stdout, stderr io.Writer) error {
	if err := f.check(); err != nil {
		return err
	}
	log := f.logger()

	// 1. Load documents
	log.Debug("loading schema", "path", f.schemaPath)
	schemaFile, err := document.Load(f.schemaPath)
	if err != nil {
		return exitError(3, "failed to load schema: %v", err)
	}
	log.Debug("loading payload", "path", f.payloadPath)
	payloadFile, err := document.Load(f.payloadPath)
	if err != nil {
		return exitError(3, "failed to load payload: %v", err)
	}
	log.Debug("documents loaded", "schema_hash", schemaFile.Hash, "payload_hash", payloadFile.Hash)

	// 2. Build report
	engine := schema.NewEngine(schema.Options{AssertFormat: f.assertFormat})
	r, err := report.BuildFromText(engine,
		schemaFile.FilePath, schemaFile.Raw,
		payloadFile.FilePath, payloadFile.Raw,
		f.strict)
	if err != nil {
		var ipe *report.InputParseError
		var sce *report.SchemaCompilationError
		switch {
		case errors.As(err, &ipe):
			return exitError(3, "%v", err)
		case errors.As(err, &sce):
			return exitError(4, "%v", err)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	log.Info("report built", "pass", r.Pass, "issues", r.IssueCount, "strict", f.strict)

	if f.reportOut != "" {
		log.Debug("exporting report", "path", f.reportOut)
		if err := export.WriteReport(f.reportOut, r); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
	}

	// 3. Explanation. Failures are reported and never touch the report.
	var expl *explain.Explanation
	switch {
	case f.explain && r.Pass:
		log.Info("report passed; skipping explanation")
	case f.explain:
		expl, err = f.requestExplanation(ctx, r)
		if err != nil {
			log.Warn("explanation failed", "error", err)
			fmt.Fprintf(stderr, "AI assist failed: %v\n", err)
			expl = nil
		}
	}

	// 4. Output
	var output string
	switch f.format {
	case "json":
		data, err := report.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		output = string(data)
	case "md":
		output = render.Markdown(r, expl)
	case "text":
		output = render.Text(r, expl)
	}
	if err := f.writeOutput(stdout, output); err != nil {
		return err
	}

	// JSON output carries the report only, so the explanation always goes to
	// a file there.
	if expl != nil && (f.explainOut != "" || f.format == "json") {
		if err := export.WriteExplanation(f.explainOut, expl); err != nil {
			return fmt.Errorf("failed to write explanation: %w", err)
		}
	}

	// 5. Exit code
	if f.failOnIssues && !r.Pass {
		return exitError(2, "payload does not conform: %d issue(s)", r.IssueCount)
	}
	return nil
}
