package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func mustNotError(t *testing.T, r *mcp.CallToolResult, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, r)
	require.False(t, r.IsError, "tool error: %s", resultText(r))
}

func TestAdultTool_Definition(t *testing.T) {
	def := NewAdultTool(catalog.Default(), scoring.NewAdultEngine()).Definition()

	assert.Equal(t, "score_adult", def.Name)
	props := def.InputSchema.Properties
	for _, id := range scoring.AdultQuestions {
		assert.Contains(t, props, string(id))
	}
	assert.Contains(t, props, "format")
	assert.Equal(t, []string{"age"}, def.InputSchema.Required)
}

func TestAdultTool_MidpointDefaults(t *testing.T) {
	tool := NewAdultTool(catalog.Default(), scoring.NewAdultEngine(scoring.WithPicker(scoring.FixedPicker(3))))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"age": float64(30)}))
	mustNotError(t, result, err)

	text := resultText(result)
	assert.Contains(t, text, "## Score : 74/100 (Bon)")
	assert.Contains(t, text, "| Santé physique | 60/100 |")
}

func TestAdultTool_JSON(t *testing.T) {
	tool := NewAdultTool(catalog.Default(), scoring.NewAdultEngine(scoring.WithPicker(scoring.FixedPicker(0))))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"age":             float64(45),
		"activity_hours":  float64(1),
		"sedentary_hours": float64(10),
		"sleep_hours":     float64(5),
		"screen_hours":    float64(4),
		"format":          "json",
	}))
	mustNotError(t, result, err)

	var got scoring.AdultResult
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &got))
	assert.Equal(t, 10.0, got.Answers.SedentaryHours)
	assert.Equal(t, 45, got.Answers.Age)
	assert.Equal(t, "Avec 10h assis par jour, vous perdez 5 mois d'espérance de vie par an.", got.ShockPhrase)
}

func TestAdultTool_Errors(t *testing.T) {
	tool := NewAdultTool(catalog.Default(), scoring.NewAdultEngine())

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing age", map[string]interface{}{}, "age is required"},
		{"minor", map[string]interface{}{"age": float64(12)}, "age 12"},
		{"fractional age", map[string]interface{}{"age": 30.9}, "whole number"},
		{"out of range", map[string]interface{}{"age": float64(30), "sleep_hours": float64(20)}, "sleep_hours"},
		{"bad format", map[string]interface{}{"age": float64(30), "format": "pdf"}, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Handle(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			assert.Contains(t, resultText(result), tt.want)
		})
	}
}

func TestChildTool(t *testing.T) {
	tool := NewChildTool(scoring.NewChildEngine(scoring.WithPicker(scoring.FixedPicker(0))))

	def := tool.Definition()
	assert.Equal(t, "score_child", def.Name)
	assert.ElementsMatch(t, []string{"age", "screen_hours"}, def.InputSchema.Required)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"age":          float64(8),
		"screen_hours": float64(10),
		"devices":      []interface{}{"smartphone", "tv"},
		"format":       "json",
	}))
	mustNotError(t, result, err)

	var got scoring.ChildResult
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &got))
	assert.Equal(t, 0.0, got.TotalScore)
	assert.Equal(t, []string{"smartphone", "tv"}, got.Answers.Devices)
	assert.Equal(t, "6-9 ans", got.Detailed.AgeGroup)
	assert.Len(t, got.Detailed.Devices, 2)
}

func TestChildTool_Markdown(t *testing.T) {
	tool := NewChildTool(scoring.NewChildEngine())

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"age":          float64(8),
		"screen_hours": float64(0.5),
	}))
	mustNotError(t, result, err)
	assert.Contains(t, resultText(result), "# Diagnostic écrans")
	assert.Contains(t, resultText(result), "## Score : 100/100 (Excellent)")
}

func TestChildTool_Errors(t *testing.T) {
	tool := NewChildTool(scoring.NewChildEngine())

	for _, args := range []map[string]interface{}{
		{"screen_hours": float64(2)},
		{"age": float64(8)},
		{"age": float64(8), "screen_hours": float64(13)},
		{"age": float64(19), "screen_hours": float64(1)},
		{"age": 8.5, "screen_hours": float64(1)},
	} {
		result, err := tool.Handle(context.Background(), makeReq(args))
		require.NoError(t, err)
		assert.True(t, result.IsError, "%v", args)
	}
}

func TestQuestionsTool(t *testing.T) {
	tool := NewQuestionsTool(catalog.Default())
	assert.Equal(t, "list_questions", tool.Definition().Name)

	result, err := tool.Handle(context.Background(), makeReq(nil))
	mustNotError(t, result, err)

	text := resultText(result)
	for _, q := range catalog.Default().Questions {
		assert.Contains(t, text, "**"+q.ID+"**")
	}
	assert.Contains(t, text, "tablet_smartphone: Tablette/Smartphone")
	assert.Contains(t, text, "- **age**: 18 to 99")
}

func TestNewServer(t *testing.T) {
	s := NewServer(catalog.Default(), scoring.NewAdultEngine(), scoring.NewChildEngine())
	require.NotNil(t, s)
}
