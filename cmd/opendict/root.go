package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/app"
	"github.com/jqhoogland/open-dictionary/internal/config"
)

type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "opendict",
		Short: "Structured dictionary entries from Wiktionary pages",
		Long: `opendict fetches Wiktionary pages, parses their wikitext and returns
structured entries: etymology, pronunciation and definitions per word and
language.

Configuration is read from --config (or CONFIG_PATH, default ./config.yaml)
and overridden by environment variables. Run "opendict env" for the
full list.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(
		&opts.cfgFile, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)",
	)

	cmd.AddCommand(
		newServeCmd(opts),
		newLookupCmd(opts),
		newParseCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(opts),
		newVersionCmd(),
		newEnvCmd(),
	)
	return cmd
}

// load reads the configuration and builds the logger.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables read at startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.Usage()+"\n")
			return err
		},
	}
}
