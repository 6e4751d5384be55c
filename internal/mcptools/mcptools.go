// Package mcptools exposes the scoring engines as MCP tools.
//
// Each tool follows the same shape:
// - a struct holding its dependencies, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// The tools are pure: nothing is stored and no lead is captured.
package mcptools

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer creates an MCP server with every scoring tool registered.
func NewServer(c *catalog.Catalog, adult *scoring.AdultEngine, child *scoring.ChildEngine) *server.MCPServer {
	s := server.NewMCPServer(
		"lifescore",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Score the lifescore questionnaires. Call list_questions first to learn the accepted ranges."),
	)

	questions := NewQuestionsTool(c)
	s.AddTool(questions.Definition(), questions.Handle)

	adultTool := NewAdultTool(c, adult)
	s.AddTool(adultTool.Definition(), adultTool.Handle)

	childTool := NewChildTool(child)
	s.AddTool(childTool.Definition(), childTool.Handle)

	return s
}

// formatArg declares the shared output format argument.
func formatArg() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Output format: markdown (default) or json"),
		mcp.Enum("markdown", "json"),
	)
}

// renderResult turns a report into the tool result for the requested format.
func renderResult(req mcp.CallToolRequest, rep *surface.Report, raw any) (*mcp.CallToolResult, error) {
	switch format := req.GetString("format", "markdown"); format {
	case "markdown", "":
		return mcp.NewToolResultText(surface.BuildMarkdown(rep)), nil
	case "json":
		data, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding result: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want markdown or json)", format)), nil
	}
}

// wholeAge reads the required age argument and rejects fractional years.
func wholeAge(req mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	age, err := req.RequireFloat("age")
	if err != nil {
		return 0, mcp.NewToolResultError("age is required")
	}
	if age != math.Trunc(age) {
		return 0, mcp.NewToolResultError(fmt.Sprintf("age must be a whole number of years, got %g", age))
	}
	return int(age), nil
}

func now() time.Time { return time.Now().UTC() }
