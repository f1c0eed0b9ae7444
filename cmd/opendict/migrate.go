package main

import (
	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate up|down|status",
		Short: "Apply, roll back or inspect database migrations",
		Long: `Run the embedded goose migrations against database.dsn.

  up      apply all pending migrations
  down    roll back the most recent migration
  status  log the state of every migration`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			return postgres.Migrate(cmd.Context(), cfg.Database.DSN, args[0], logger)
		},
	}
}
