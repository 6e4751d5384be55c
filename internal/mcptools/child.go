package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

// ChildTool handles the score_child MCP tool.
type ChildTool struct {
	engine *scoring.ChildEngine
}

// NewChildTool creates a ChildTool.
func NewChildTool(engine *scoring.ChildEngine) *ChildTool {
	return &ChildTool{engine: engine}
}

// Definition returns the MCP tool definition for score_child.
func (t *ChildTool) Definition() mcp.Tool {
	return mcp.NewTool("score_child",
		mcp.WithDescription(
			"Score a child's daily screen time against the average for the age. Returns the score, "+
				"six sub-impacts, the projection to age 18 and age-appropriate recommendations.",
		),
		mcp.WithNumber("age",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Child age in years (%d-%d)", scoring.MinChildAge, scoring.MaxChildAge)),
		),
		mcp.WithNumber("screen_hours",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Daily screen time in hours (0-%g)", scoring.MaxChildScreenHours)),
		),
		mcp.WithArray("devices",
			mcp.Description("Devices used: smartphone, tablet, tv, gaming, or anything else for internet"),
			mcp.WithStringItems(),
		),
		formatArg(),
	)
}

// Handle processes the score_child tool call.
func (t *ChildTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	age, bad := wholeAge(req)
	if bad != nil {
		return bad, nil
	}
	hours, err := req.RequireFloat("screen_hours")
	if err != nil {
		return mcp.NewToolResultError("screen_hours is required"), nil
	}

	answers := scoring.ChildAnswers{
		Age:         age,
		ScreenHours: hours,
		Devices:     req.GetStringSlice("devices", nil),
	}
	result, err := t.engine.Evaluate(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidAnswers) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, fmt.Errorf("scoring child answers: %w", err)
	}
	return renderResult(req, surface.FromChild(result, now()), result)
}
