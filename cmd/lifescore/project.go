package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func newProjectCmd(g *globalOpts) *cobra.Command {
	var (
		age      int
		score    float64
		audience string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a score against the reference curve",
		Long: `Assumes the gap between the score and the average for the age holds for every
later age. Adult scores run fifteen years ahead (at most to 80); child screen
hours (--audience child) run to age 18.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := project(catalog.Default(), audience, age, score)
			if err != nil {
				return err
			}
			return printSeries(cmd, g, series)
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "Current age (required)")
	cmd.Flags().Float64Var(&score, "score", 0, "Current adult score, or daily screen hours for a child (required)")
	cmd.Flags().StringVar(&audience, "audience", "adult", "Reference curve: adult or child")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func project(c *catalog.Catalog, audience string, age int, score float64) (scoring.ComparisonSeries, error) {
	switch audience {
	case "adult":
		if age < scoring.MinAdultAge || age > scoring.MaxAdultAge {
			return nil, fmt.Errorf("age %d outside %d-%d", age, scoring.MinAdultAge, scoring.MaxAdultAge)
		}
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("score %g outside 0-100", score)
		}
		return scoring.Project(c.AdultReference, age, score, scoring.AdultProjection(age)), nil
	case "child":
		if age < scoring.MinChildAge || age > scoring.MaxChildAge {
			return nil, fmt.Errorf("age %d outside %d-%d", age, scoring.MinChildAge, scoring.MaxChildAge)
		}
		if score < 0 || score > scoring.MaxChildScreenHours {
			return nil, fmt.Errorf("screen hours %g outside 0-%g", score, scoring.MaxChildScreenHours)
		}
		return scoring.Project(c.ChildScreenTime, age, score, scoring.ChildProjection()), nil
	default:
		return nil, fmt.Errorf("unknown audience %q (want adult or child)", audience)
	}
}

func printSeries(cmd *cobra.Command, g *globalOpts, series scoring.ComparisonSeries) error {
	w := cmd.OutOrStdout()
	switch g.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(series); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "markdown", "md":
		fmt.Fprintln(w, "| Age | Average | Projected |")
		fmt.Fprintln(w, "|-----|---------|-----------|")
		for _, p := range series {
			fmt.Fprintf(w, "| %d | %g | %g |\n", p.Age, p.Reference, p.Projected)
		}
	default:
		fmt.Fprintf(w, "%4s  %8s  %9s\n", "AGE", "AVERAGE", "PROJECTED")
		for _, p := range series {
			fmt.Fprintf(w, "%4d  %8.1f  %9.1f\n", p.Age, p.Reference, p.Projected)
		}
	}
	return nil
}
