package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

func newChildCmd(g *globalOpts) *cobra.Command {
	var (
		age         int
		screenHours float64
		devices     []string
	)

	cmd := &cobra.Command{
		Use:   "child",
		Short: "Score a child's daily screen time",
		Long:  `Compares the daily screen time with the average for the age and projects it to age 18.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChild(cmd, g, scoring.ChildAnswers{Age: age, ScreenHours: screenHours, Devices: devices})
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, fmt.Sprintf("Child age in years, %d to %d (required)", scoring.MinChildAge, scoring.MaxChildAge))
	cmd.Flags().Float64Var(&screenHours, "screen-hours", 0, fmt.Sprintf("Daily screen time in hours, 0 to %g (required)", scoring.MaxChildScreenHours))
	cmd.Flags().StringSliceVar(&devices, "device", nil, "Device used: smartphone, tablet, tv, gaming or other (repeatable)")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("screen-hours")

	return cmd
}

func runChild(cmd *cobra.Command, g *globalOpts, answers scoring.ChildAnswers) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	engine := scoring.NewChildEngine(g.engineOptions(cmd, cfg)...)
	result, err := engine.Evaluate(answers)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return g.emit(cmd, surface.FromChild(result, time.Now().UTC()), result)
}
