package main

import (
	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

The server needs a database for the page cache (database.dsn). With
database.auto_migrate set, pending migrations run before it starts
listening. Admin endpoints are enabled when auth.jwt_secret is set.

Endpoints:
  GET  /api/v1/entries/{lang}/{word}
  POST /api/v1/entries:batch
  POST /api/v1/parse
  GET  /admin/notices               (admin token)
  DELETE /admin/pages/{word}        (admin token)
  POST /admin/pages/{word}/refresh  (admin token)
  GET  /live, /ready, /health, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			return app.Serve(cmd.Context(), cfg, logger)
		},
	}
}
