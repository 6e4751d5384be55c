// Package main provides the lifescore CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:   "lifescore",
		Short: "Lifestyle and screen-time diagnostics",
		Long: `Lifescore scores the adult sedentary-lifestyle questionnaire and the child
screen-time questionnaire, compares the result with the average for the age and
prints recommendations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&g.output, "output", "o", "text", "Output format: text, json or markdown")
	pf.BoolVar(&g.pretty, "pretty", false, "Style markdown output for the terminal")
	pf.Uint64Var(&g.seed, "seed", 0, "Seed for the random phrase and recommendation picks")
	pf.BoolVar(&g.save, "save", false, "Save the result JSON under ~/.cache/lifescore/reports")
	pf.StringVar(&g.configPath, "config", "", "Path to config file (default: .lifescore/config.yaml, searched upward)")

	rootCmd.AddCommand(
		newAdultCmd(g),
		newChildCmd(g),
		newQuestionsCmd(g),
		newProjectCmd(g),
		newMCPCmd(g),
		newTokenCmd(g),
	)
	return rootCmd
}
