package mcpserver

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/export"
	"github.com/dshills/contractcheck/internal/report"
	"github.com/dshills/contractcheck/internal/schema"
)

func registerTools(s *server.MCPServer, opts Options) {
	s.AddTool(
		mcplib.NewTool("contractcheck_validate",
			mcplib.WithDescription("Validate a JSON payload against a JSON Schema and return the deterministic validation report."),
			mcplib.WithString("schema", mcplib.Required(), mcplib.Description("JSON Schema document text")),
			mcplib.WithString("payload", mcplib.Required(), mcplib.Description("Payload document text")),
			mcplib.WithBoolean("strict", mcplib.Description("Reject top-level properties the schema does not declare")),
			mcplib.WithString("format", mcplib.Description("Document format: json (default) or yaml")),
		),
		handleValidate(opts),
	)

	s.AddTool(
		mcplib.NewTool("contractcheck_explain",
			mcplib.WithDescription("Ask a language model to explain a validation report. Needs an API key argument or provider key in the environment."),
			mcplib.WithString("report", mcplib.Required(), mcplib.Description("Validation report JSON as returned by contractcheck_validate")),
			mcplib.WithString("model", mcplib.Description("Model ID, e.g. gpt-4o-mini or claude-sonnet-4-20250514")),
			mcplib.WithString("api_key", mcplib.Description("Provider API key, used for this call only")),
			mcplib.WithString("shape", mcplib.Description("Explanation shape: a or b")),
		),
		handleExplain(opts),
	)
}

func handleValidate(opts Options) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		schemaText, err := request.RequireString("schema")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		payloadText, err := request.RequireString("payload")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		strict := request.GetBool("strict", opts.Strict)

		ext := ".json"
		switch f := request.GetString("format", "json"); f {
		case "json":
		case "yaml", "yml":
			ext = ".yaml"
		default:
			return errorResult(fmt.Sprintf("unknown format %q: use json or yaml", f)), nil
		}

		r, err := report.BuildFromText(schema.NewEngine(opts.Engine),
			"schema"+ext, []byte(schemaText), "payload"+ext, []byte(payloadText), strict)
		if err != nil {
			opts.Logger.Warn("validate tool failed", "error", err)
			return errorResult(err.Error()), nil
		}
		opts.Logger.Debug("validate tool", "pass", r.Pass, "issues", r.IssueCount, "strict", strict)

		data, err := report.Marshal(r)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(data)), nil
	}
}

func handleExplain(opts Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		reportText, err := request.RequireString("report")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		r, err := report.Decode([]byte(reportText))
		if err != nil {
			return errorResult(fmt.Sprintf("reading report: %v", err)), nil
		}
		if err := report.CheckConsistency(r); err != nil {
			return errorResult(fmt.Sprintf("inconsistent report: %v", err)), nil
		}

		eo := opts.Explain
		eo.Model = request.GetString("model", eo.Model)
		if s := request.GetString("shape", ""); s != "" {
			shape, err := explain.ParseShape(s)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			eo.Shape = shape
		}

		p, err := opts.Resolve(eo.Model, request.GetString("api_key", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("AI assist failed: %v", err)), nil
		}
		e, err := explain.Request(ctx, p, r, eo)
		if err != nil {
			opts.Logger.Warn("explain tool failed", "error", err)
			return errorResult(fmt.Sprintf("AI assist failed: %v", err)), nil
		}
		if v := explain.Ground(e, r); len(v) > 0 {
			opts.Logger.Info("ungrounded explanation items", "count", len(v))
		}

		data, err := export.MarshalExplanation(e)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(data)), nil
	}
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
