// Package mcpserver exposes report building and explanation as MCP tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/llm"
	"github.com/dshills/contractcheck/internal/logger"
	"github.com/dshills/contractcheck/internal/schema"
)

// Options configures the tools. Zero values fall back to the defaults used
// by the CLI.
type Options struct {
	Version string
	Strict  bool
	Engine  schema.Options
	Explain explain.Options
	// Resolve selects the model provider. Nil means explain.Resolve.
	Resolve func(model, apiKey string) (llm.Provider, error)
	Logger  *logger.Logger
}

// New creates an MCP server with the contractcheck tools registered.
func New(opts Options) *server.MCPServer {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Resolve == nil {
		opts.Resolve = explain.Resolve
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Explain == (explain.Options{}) {
		opts.Explain = explain.DefaultOptions()
	}

	s := server.NewMCPServer(
		"contractcheck",
		opts.Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, opts)
	return s
}

// Serve runs the server over stdin/stdout until the client disconnects.
func Serve(opts Options) error {
	return server.ServeStdio(New(opts))
}
