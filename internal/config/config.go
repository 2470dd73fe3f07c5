// Package config loads contractcheck settings from YAML.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".contractcheck.yaml"

//go:embed default.yaml
var defaultYAML []byte

// Config holds every setting a run can take from a file.
type Config struct {
	Strict       bool   `yaml:"strict"`
	Format       string `yaml:"format"`
	AssertFormat bool   `yaml:"assert_format"`

	Model            string   `yaml:"model"`
	Temperature      float64  `yaml:"temperature"`
	MaxTokens        int      `yaml:"max_tokens"`
	Timeout          Duration `yaml:"timeout"`
	MaxPromptIssues  int      `yaml:"max_prompt_issues"`
	ExplanationShape string   `yaml:"explanation_shape"`
	Redact           bool     `yaml:"redact"`

	LogMode string `yaml:"log_mode"`
}

// Duration is a time.Duration written as a Go duration string ("60s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := decode(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with a configuration file. An empty path
// looks for FileName in the working directory and falls back to the defaults
// when it does not exist. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	name := path
	if name == "" {
		name = FileName
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if path == "" && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// decode overlays YAML onto cfg. Keys not present keep their current value;
// unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch c.Format {
	case "json", "md", "text":
	default:
		errs = append(errs, fmt.Errorf("format must be json, md or text, got %q", c.Format))
	}
	switch c.ExplanationShape {
	case "a", "b":
	default:
		errs = append(errs, fmt.Errorf("explanation_shape must be a or b, got %q", c.ExplanationShape))
	}
	switch c.LogMode {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("log_mode must be dev or prod, got %q", c.LogMode))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout.Std()))
	}
	if c.MaxPromptIssues <= 0 {
		errs = append(errs, fmt.Errorf("max_prompt_issues must be positive, got %d", c.MaxPromptIssues))
	}
	return errors.Join(errs...)
}
