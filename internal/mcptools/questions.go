package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

// QuestionsTool handles the list_questions MCP tool.
type QuestionsTool struct {
	catalog *catalog.Catalog
}

// NewQuestionsTool creates a QuestionsTool over the given catalog.
func NewQuestionsTool(c *catalog.Catalog) *QuestionsTool {
	return &QuestionsTool{catalog: c}
}

// Definition returns the MCP tool definition for list_questions.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_questions",
		mcp.WithDescription("List the adult questions with their ranges and defaults, and the child device identifiers."),
	)
}

// Handle processes the list_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("## Adult questionnaire\n\n")
	fmt.Fprintf(&sb, "- **age**: %d to %d\n", scoring.MinAdultAge, scoring.MaxAdultAge)
	for _, q := range t.catalog.Questions {
		fmt.Fprintf(&sb, "- **%s** (%s): %g to %g %s, step %g, default %g\n",
			q.ID, q.Label, q.Min, q.Max, q.Unit, q.Step, q.Midpoint())
	}

	sb.WriteString("\n## Child questionnaire\n\n")
	fmt.Fprintf(&sb, "- **age**: %d to %d\n", scoring.MinChildAge, scoring.MaxChildAge)
	fmt.Fprintf(&sb, "- **screen_hours**: 0 to %g hours per day\n", scoring.MaxChildScreenHours)
	sb.WriteString("- **devices**: smartphone, tablet, tv, gaming, computer\n")
	for _, c := range catalog.DeviceCategories {
		fmt.Fprintf(&sb, "  - %s: %s\n", c, c.Label())
	}

	return mcp.NewToolResultText(sb.String()), nil
}
