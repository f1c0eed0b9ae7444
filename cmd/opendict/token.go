package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/auth"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token --subject NAME",
		Short: "Print an admin token for the /admin endpoints",
		Long: `Sign an admin JWT with auth.jwt_secret. The subject names the operator
in the server's access logs.

Example:
  curl -H "Authorization: Bearer $(opendict token --subject ops)" \
    localhost:8080/admin/notices`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			if !cfg.Auth.AdminEnabled() {
				return fmt.Errorf("auth.jwt_secret is not set")
			}
			if ttl <= 0 {
				ttl = cfg.Auth.AdminTokenTTL
			}

			tok, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl).GenerateAdminToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "operator name stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.admin_token_ttl)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
