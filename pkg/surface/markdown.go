package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer writes the report as Markdown. This is the text export of
// a report. With Pretty set, the Markdown is styled for a terminal.
type MarkdownRenderer struct {
	Pretty bool
	Width  int // word wrap for Pretty output; 80 when zero
}

func (r *MarkdownRenderer) Render(w io.Writer, report *Report) error {
	md := BuildMarkdown(report)
	if !r.Pretty {
		_, err := io.WriteString(w, md)
		return err
	}

	width := r.Width
	if width == 0 {
		width = 80
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// BuildMarkdown formats the report as a Markdown document.
func BuildMarkdown(report *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", report.Title)
	if report.Email != "" {
		fmt.Fprintf(&sb, "_Rapport préparé pour %s_\n\n", report.Email)
	}
	fmt.Fprintf(&sb, "## Score : %.0f/100 (%s)\n\n", whole(report.Score), report.Band)
	if report.Summary != "" {
		fmt.Fprintf(&sb, "%s\n\n", report.Summary)
	}
	if report.ShockPhrase != "" {
		fmt.Fprintf(&sb, "> %s\n\n", report.ShockPhrase)
	}

	if len(report.Sections) > 0 {
		sb.WriteString("### Impacts\n\n")
		sb.WriteString("| Domaine | Score | Bilan |\n|---------|-------|-------|\n")
		for _, s := range report.Sections {
			fmt.Fprintf(&sb, "| %s | %.0f/100 | %s |\n", s.Name, whole(s.Score), s.Description)
		}
		sb.WriteString("\n")

		for _, s := range report.Sections {
			if len(s.Lines) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "**%s**\n\n", s.Name)
			for _, line := range s.Lines {
				fmt.Fprintf(&sb, "- %s\n", line)
			}
			sb.WriteString("\n")
		}
	}

	c := report.Comparison
	if len(c.Series) > 0 {
		sb.WriteString("### Comparaison\n\n")
		fmt.Fprintf(&sb, "Meilleur que %d%% des personnes du même âge (moyenne : %s).\n\n", c.BetterThanPercent, formatValue(c.AverageScore))
		fmt.Fprintf(&sb, "| Âge | Moyenne (%s) | Projection (%s) |\n|-----|---------|------------|\n", report.ComparisonUnit, report.ComparisonUnit)
		for _, p := range c.Series {
			fmt.Fprintf(&sb, "| %d | %s | %s |\n", p.Age, formatValue(p.Reference), formatValue(p.Projected))
		}
		sb.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("### Recommandations\n\n")
		for i, rec := range report.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
		sb.WriteString("\n")
	}

	for _, d := range report.Details {
		fmt.Fprintf(&sb, "### %s\n\n%s\n\n", d.Heading, d.Text)
	}

	return sb.String()
}

func formatValue(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
