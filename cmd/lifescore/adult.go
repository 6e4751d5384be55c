package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

func newAdultCmd(g *globalOpts) *cobra.Command {
	var (
		age     int
		explain bool
	)
	c := catalog.Default()
	values := make(map[scoring.QuestionID]*float64, len(scoring.AdultQuestions))

	cmd := &cobra.Command{
		Use:   "adult",
		Short: "Score the adult sedentary-lifestyle questionnaire",
		Long: `Scores the eleven lifestyle answers for the given age. Every answer defaults
to the middle of its range, as the quiz sliders do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers := scoring.AdultAnswers{Age: age}
			for id, v := range values {
				answers.Set(id, *v)
			}
			return runAdult(cmd, g, answers, explain)
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, fmt.Sprintf("Age in years, %d to %d (required)", scoring.MinAdultAge, scoring.MaxAdultAge))
	cmd.Flags().BoolVar(&explain, "explain", false, "Print the points earned by each answer (stderr)")
	_ = cmd.MarkFlagRequired("age")
	for _, id := range scoring.AdultQuestions {
		q, ok := c.Question(string(id))
		if !ok {
			continue
		}
		v := new(float64)
		values[id] = v
		cmd.Flags().Float64Var(v, flagName(id), q.Midpoint(), fmt.Sprintf("%s (%g-%g %s)", q.Label, q.Min, q.Max, q.Unit))
	}

	return cmd
}

func runAdult(cmd *cobra.Command, g *globalOpts, answers scoring.AdultAnswers, explain bool) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	engine := scoring.NewAdultEngine(g.engineOptions(cmd, cfg)...)
	result, err := engine.Evaluate(answers)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := g.emit(cmd, surface.FromAdult(result, time.Now().UTC()), result); err != nil {
		return err
	}
	if explain {
		printBreakdown(cmd.ErrOrStderr(), engine.Aggregator().ScoreDetailed(float64(answers.Age), result.Buckets))
	}
	return nil
}

// printBreakdown lists each answer's bucket and points.
func printBreakdown(w io.Writer, b scoring.Breakdown) {
	fmt.Fprintf(w, "\nScore breakdown (%.1f of %.0f points):\n", b.Total, b.Max)
	for _, p := range b.Scored {
		fmt.Fprintf(w, "  %-20s %-6s %4.1f\n", p.Question, p.Bucket, p.Points)
	}
	for _, p := range b.Skipped {
		fmt.Fprintf(w, "  %-20s %-6s skipped\n", p.Question, p.Bucket)
	}
}
