package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dshills/contractcheck/internal/config"
	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/llm"
	"github.com/dshills/contractcheck/internal/logger"
	"github.com/dshills/contractcheck/internal/report"
)

// runFlags are the settings shared by commands that render output or reach a
// model. Values left unset on the command line come from the config file.
type runFlags struct {
	configPath string
	format     string
	out        string
	verbose    bool
	logMode    string

	model       string
	apiKey      string
	timeout     time.Duration
	maxTokens   int
	temperature float64
	shape       string
	redact      bool
	maxIssues   int
	seed        int
	hasSeed     bool

	// provider replaces provider resolution in tests.
	provider llm.Provider
	log      *logger.Logger
}

func (f *runFlags) register(cmd *cobra.Command) {
	d := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Config file (default: "+config.FileName+" if present)")
	flags.StringVar(&f.format, "format", d.Format, "Output format: json, md or text")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")
	flags.StringVar(&f.logMode, "log-mode", d.LogMode, "Log encoding: dev or prod")

	flags.StringVar(&f.model, "model", d.Model, "Model ID (e.g., gpt-4o-mini, claude-sonnet-4-20250514)")
	flags.StringVar(&f.apiKey, "api-key", "", "Provider API key (default: OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	flags.DurationVar(&f.timeout, "timeout", d.Timeout.Std(), "Explanation request timeout")
	flags.IntVar(&f.maxTokens, "max-tokens", d.MaxTokens, "Max response tokens")
	flags.Float64Var(&f.temperature, "temperature", d.Temperature, "Model temperature")
	flags.StringVar(&f.shape, "shape", d.ExplanationShape, "Explanation shape: a or b")
	flags.BoolVar(&f.redact, "redact", d.Redact, "Redact secrets before sending to model")
	flags.IntVar(&f.maxIssues, "max-prompt-issues", d.MaxPromptIssues, "Issues included in the explanation prompt")
	flags.IntVar(&f.seed, "seed", 0, "Random seed (if supported)")
}

// setup loads the config file, fills every flag the user did not set and
// builds the run logger.
func (f *runFlags) setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, exitError(3, "failed to load config: %v", err)
	}

	changed := cmd.Flags().Changed
	if !changed("format") {
		f.format = cfg.Format
	}
	if !changed("log-mode") {
		f.logMode = cfg.LogMode
	}
	if !changed("model") {
		f.model = cfg.Model
	}
	if !changed("timeout") {
		f.timeout = cfg.Timeout.Std()
	}
	if !changed("max-tokens") {
		f.maxTokens = cfg.MaxTokens
	}
	if !changed("temperature") {
		f.temperature = cfg.Temperature
	}
	if !changed("shape") {
		f.shape = cfg.ExplanationShape
	}
	if !changed("redact") {
		f.redact = cfg.Redact
	}
	if !changed("max-prompt-issues") {
		f.maxIssues = cfg.MaxPromptIssues
	}
	f.hasSeed = changed("seed")

	log, err := logger.New(f.logMode, f.verbose)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to create logger: %w", err)
	}
	f.log = log.With("run_id", uuid.NewString())
	return cfg, nil
}

func (f *runFlags) logger() *logger.Logger {
	if f.log == nil {
		f.log = logger.Nop()
	}
	return f.log
}

// check rejects flag values that no config validation has seen.
func (f *runFlags) check() error {
	switch f.format {
	case "json", "md", "text":
	default:
		return exitError(3, "unknown format: %s", f.format)
	}
	if _, err := explain.ParseShape(f.shape); err != nil {
		return exitError(3, "%v", err)
	}
	return nil
}

// requestExplanation makes the single model call for r. The API key is
// dropped from the flags once the provider holds it.
func (f *runFlags) requestExplanation(ctx context.Context, r *report.Report) (*explain.Explanation, error) {
	shape, err := explain.ParseShape(f.shape)
	if err != nil {
		return nil, err
	}

	p := f.provider
	if p == nil {
		p, err = explain.Resolve(f.model, f.apiKey)
		f.apiKey = ""
		if err != nil {
			return nil, err
		}
	}

	opts := explain.Options{
		Model:       f.model,
		Shape:       shape,
		Temperature: f.temperature,
		MaxTokens:   f.maxTokens,
		Timeout:     f.timeout,
		MaxIssues:   f.maxIssues,
		Redact:      f.redact,
	}
	if f.hasSeed {
		seed := f.seed
		opts.Seed = &seed
	}

	log := f.logger()
	log.Debug("requesting explanation", "provider", p.Name(), "model", f.model, "shape", string(shape), "issues", r.IssueCount)
	e, err := explain.Request(ctx, p, r, opts)
	if err != nil {
		return nil, err
	}
	if v := explain.Ground(e, r); len(v) > 0 {
		log.Warn("explanation names fields with no reported issue", "count", len(v))
	}
	return e, nil
}

// writeOutput sends output to --out, or to w when no file is given.
func (f *runFlags) writeOutput(w io.Writer, output string) error {
	if f.out == "" {
		_, err := io.WriteString(w, output)
		return err
	}
	f.logger().Debug("writing output", "path", f.out)
	if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
