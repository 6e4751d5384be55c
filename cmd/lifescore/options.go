package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/pkg/config"
	"github.com/lifescore/lifescore/pkg/scoring"
	"github.com/lifescore/lifescore/pkg/surface"
)

// globalOpts holds the persistent flags shared by every subcommand.
type globalOpts struct {
	output     string
	pretty     bool
	seed       uint64
	save       bool
	configPath string
}

// loadConfig reads the explicit --config file, or the nearest
// .lifescore/config.yaml. A broken discovered file falls back to defaults.
func (g *globalOpts) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		cfg, err := config.Load(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Load(config.FindConfigFile(cwd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

// engineOptions pins the picker when --seed or scoring.seed is set.
func (g *globalOpts) engineOptions(cmd *cobra.Command, cfg *config.Config) []scoring.Option {
	var opts []scoring.Option
	switch {
	case cmd.Flags().Changed("seed"):
		opts = append(opts, scoring.WithPicker(scoring.NewPicker(g.seed)))
	case cfg.Scoring.Seed != 0:
		opts = append(opts, scoring.WithPicker(scoring.NewPicker(cfg.Scoring.Seed)))
	}
	return opts
}

// emit renders rep in the selected format and optionally saves result.
func (g *globalOpts) emit(cmd *cobra.Command, rep *surface.Report, result any) error {
	renderer, err := surface.RendererFor(g.output, g.pretty)
	if err != nil {
		return err
	}
	if err := renderer.Render(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if g.save {
		path, err := saveResult(rep.Audience, rep.GeneratedAt, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Result saved: %s\n", path)
	}
	return nil
}

// saveResult writes result as JSON into the report directory.
func saveResult(audience surface.Audience, at time.Time, result any) (string, error) {
	dir := config.ReportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}

	path := filepath.Join(dir, surface.Filename(audience, "json", at))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("saving result: %w", err)
	}
	return path, nil
}
