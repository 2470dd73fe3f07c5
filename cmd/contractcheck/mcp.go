package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/contractcheck/internal/config"
	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/logger"
	"github.com/dshills/contractcheck/internal/mcpserver"
	"github.com/dshills/contractcheck/internal/schema"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}

	var configPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contractcheck tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}
			// stdout carries the protocol; the logger writes to stderr.
			log, err := logger.New(cfg.LogMode, false)
			if err != nil {
				return err
			}
			defer log.Sync()
			return mcpserver.Serve(serverOptions(cfg, log))
		},
	}
	serve.Flags().StringVar(&configPath, "config", "", "Config file (default: "+config.FileName+" if present)")

	cmd.AddCommand(serve)
	return cmd
}

func serverOptions(cfg config.Config, log *logger.Logger) mcpserver.Options {
	return mcpserver.Options{
		Version: version,
		Strict:  cfg.Strict,
		Engine:  schema.Options{AssertFormat: cfg.AssertFormat},
		Explain: explain.Options{
			Model:       cfg.Model,
			Shape:       explain.Shape(cfg.ExplanationShape),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout.Std(),
			MaxIssues:   cfg.MaxPromptIssues,
			Redact:      cfg.Redact,
		},
		Logger: log,
	}
}
