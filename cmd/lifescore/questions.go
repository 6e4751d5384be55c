package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func newQuestionsCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the adult questions and their flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestions(cmd, g, catalog.Default())
		},
	}
}

type questionEntry struct {
	catalog.Question
	Flag    string  `json:"flag"`
	Default float64 `json:"default"`
}

func runQuestions(cmd *cobra.Command, g *globalOpts, c *catalog.Catalog) error {
	entries := make([]questionEntry, 0, len(c.Questions))
	for _, q := range c.Questions {
		entries = append(entries, questionEntry{
			Question: q,
			Flag:     "--" + flagName(scoring.QuestionID(q.ID)),
			Default:  q.Midpoint(),
		})
	}

	w := cmd.OutOrStdout()
	switch g.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "markdown", "md":
		fmt.Fprintln(w, "| Flag | Question | Range | Default |")
		fmt.Fprintln(w, "|------|----------|-------|---------|")
		for _, e := range entries {
			fmt.Fprintf(w, "| `%s` | %s | %g-%g %s | %g |\n", e.Flag, e.Label, e.Min, e.Max, e.Unit, e.Default)
		}
	default:
		for _, e := range entries {
			fmt.Fprintf(w, "%-22s %s\n", e.Flag, e.Label)
			fmt.Fprintf(w, "%-22s %g-%g %s, step %g, default %g\n", "", e.Min, e.Max, e.Unit, e.Step, e.Default)
		}
	}
	return nil
}

// flagName turns a question id into its CLI flag name.
func flagName(id scoring.QuestionID) string {
	return strings.ReplaceAll(string(id), "_", "-")
}
