package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

// AdultTool handles the score_adult MCP tool.
type AdultTool struct {
	catalog *catalog.Catalog
	engine  *scoring.AdultEngine
}

// NewAdultTool creates an AdultTool. Omitted answers default to the
// catalog midpoint, as the quiz sliders do.
func NewAdultTool(c *catalog.Catalog, engine *scoring.AdultEngine) *AdultTool {
	return &AdultTool{catalog: c, engine: engine}
}

// Definition returns the MCP tool definition for score_adult.
func (t *AdultTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Score an adult sedentary-lifestyle questionnaire. Returns the 0-100 score, " +
				"the four sub-impacts, the comparison with the same age and recommendations.",
		),
		mcp.WithNumber("age",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Age in years (%d-%d)", scoring.MinAdultAge, scoring.MaxAdultAge)),
		),
	}
	for _, q := range t.catalog.Questions {
		opts = append(opts, mcp.WithNumber(q.ID,
			mcp.Description(fmt.Sprintf("%s (%g-%g %s, default %g)", q.Label, q.Min, q.Max, q.Unit, q.Midpoint())),
			mcp.Min(q.Min),
			mcp.Max(q.Max),
		))
	}
	opts = append(opts, formatArg())
	return mcp.NewTool("score_adult", opts...)
}

// Handle processes the score_adult tool call.
func (t *AdultTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	age, bad := wholeAge(req)
	if bad != nil {
		return bad, nil
	}

	answers := scoring.MidpointAnswers(t.catalog, age)
	for _, id := range scoring.AdultQuestions {
		if _, ok := req.GetArguments()[string(id)]; !ok {
			continue
		}
		def, _ := answers.Value(id)
		answers.Set(id, req.GetFloat(string(id), def))
	}

	result, err := t.engine.Evaluate(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidAnswers) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, fmt.Errorf("scoring adult answers: %w", err)
	}
	return renderResult(req, surface.FromAdult(result, now()), result)
}
