package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescore/lifescore/internal/api"
)

func newTokenCmd(g *globalOpts) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token for the lifescored admin API",
		Long: `Token signs an admin JWT with auth.jwt_secret (or LIFESCORE_JWT_SECRET) and
prints it. Send it as "Authorization: Bearer <token>" to /api/v1/admin/*.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is not set; configure it or export LIFESCORE_JWT_SECRET")
			}

			token, err := api.NewAuth(cfg.Auth.JWTSecret).WithTTL(ttl).IssueToken(subject)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Operator the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 8*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
