package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/contractcheck/internal/document"
	"github.com/dshills/contractcheck/internal/export"
	"github.com/dshills/contractcheck/internal/render"
	"github.com/dshills/contractcheck/internal/report"
)

type explainFlags struct {
	runFlags

	reportPath string
}

func newExplainCmd() *cobra.Command {
	f := &explainFlags{}

	cmd := &cobra.Command{
		Use:   "explain --report <file>",
		Short: "Explain an exported validation report with a language model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := f.setup(cmd); err != nil {
				return err
			}
			defer f.log.Sync()
			return runExplain(cmd.Context(), f, cmd.OutOrStdout())
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.reportPath, "report", "", "Report file written by validate --format json")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

func runExplain(ctx context.Context, f *explainFlags, stdout io.Writer) error {
	if err := f.check(); err != nil {
		return err
	}
	log := f.logger()

	// 1. Load report
	log.Debug("loading report", "path", f.reportPath)
	file, err := document.Load(f.reportPath)
	if err != nil {
		return exitError(3, "failed to load report: %v", err)
	}
	r, err := report.Decode(file.Raw)
	if err != nil {
		return exitError(3, "failed to read report: %v", err)
	}
	if err := report.CheckConsistency(r); err != nil {
		return exitError(3, "inconsistent report: %v", err)
	}
	if r.Pass {
		return exitError(3, "report passed; there is nothing to explain")
	}

	// 2. Explanation
	expl, err := f.requestExplanation(ctx, r)
	if err != nil {
		log.Warn("explanation failed", "error", err)
		return exitError(1, "AI assist failed: %v", err)
	}

	// 3. Output
	var output string
	switch f.format {
	case "json":
		data, err := export.MarshalExplanation(expl)
		if err != nil {
			return fmt.Errorf("failed to marshal explanation: %w", err)
		}
		output = string(data)
	case "md":
		output = render.Markdown(r, expl)
	case "text":
		output = render.Text(r, expl)
	}
	return f.writeOutput(stdout, output)
}
