package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalRenderer renders a Report as styled terminal output.
type TerminalRenderer struct{}

var bandColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("2"),
	"blue":   lipgloss.Color("4"),
	"yellow": lipgloss.Color("3"),
	"orange": lipgloss.Color("208"),
	"red":    lipgloss.Color("1"),
}

var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	quoteStyle = lipgloss.NewStyle().Italic(true).PaddingLeft(2)
)

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return boldStyle.Render(s)
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return dimStyle.Render(s)
}

func colored(s, color string) string {
	c, ok := bandColors[color]
	if noColor() || !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s)
}

func (r *TerminalRenderer) Render(w io.Writer, report *Report) error {
	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("%s: Score %.0f/100 (%s)",
			report.Title, whole(report.Score), colored(report.Band, report.BandColor))))

	if report.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", report.Summary)
	}
	if report.ShockPhrase != "" {
		if noColor() {
			fmt.Fprintf(w, "  %s\n\n", report.ShockPhrase)
		} else {
			fmt.Fprintf(w, "%s\n\n", quoteStyle.Render(report.ShockPhrase))
		}
	}

	// Impacts
	if len(report.Sections) > 0 {
		fmt.Fprintln(w, "Impacts:")
		for _, s := range report.Sections {
			fmt.Fprintf(w, "  %3.0f  %s", whole(s.Score), bold(s.Name))
			if s.Description != "" {
				fmt.Fprintf(w, " — %s", s.Description)
			}
			fmt.Fprintln(w)
			for _, line := range s.Lines {
				fmt.Fprintf(w, "       %s\n", dim(line))
			}
		}
		fmt.Fprintln(w)
	}

	// Comparison
	c := report.Comparison
	if len(c.Series) > 0 {
		fmt.Fprintf(w, "Comparison: better than %d%% of the same age (average %s %s)\n",
			c.BetterThanPercent, formatValue(c.AverageScore), report.ComparisonUnit)
		first, last := c.Series[0], c.Series[len(c.Series)-1]
		fmt.Fprintf(w, "  %s\n\n", dim(fmt.Sprintf("age %d: %s -> age %d: %s (average %s)",
			first.Age, formatValue(first.Projected), last.Age, formatValue(last.Projected), formatValue(last.Reference))))
	}

	// Recommendations
	if len(report.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations:")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	for _, d := range report.Details {
		fmt.Fprintf(w, "%s\n", bold(d.Heading))
		for _, line := range wrapText(d.Text, 76) {
			fmt.Fprintf(w, "  %s\n", dim(line))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}

// RendererFor returns the renderer for an output format name.
func RendererFor(format string, pretty bool) (Renderer, error) {
	switch format {
	case "", "text":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{Pretty: pretty}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or markdown)", format)
	}
}
