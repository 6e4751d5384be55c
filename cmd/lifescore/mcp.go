package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/internal/logging"
	"github.com/lifescore/lifescore/internal/mcptools"
	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func newMCPCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the scoring tools over MCP (stdio)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			// stdout carries the protocol; logs go to stderr.
			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			opts := append(g.engineOptions(cmd, cfg), scoring.WithLogger(logger))
			mcptools.Version = version
			s := mcptools.NewServer(catalog.Default(), scoring.NewAdultEngine(opts...), scoring.NewChildEngine(opts...))

			logger.Info("serving MCP over stdio")
			return server.ServeStdio(s)
		},
	}
}
