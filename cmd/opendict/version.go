package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/app"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := app.Info()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "opendict %s\n", info.Version)
			fmt.Fprintf(w, "  Go:     %s\n", info.GoVersion)
			fmt.Fprintf(w, "  Commit: %s\n", info.Commit)
			fmt.Fprintf(w, "  Built:  %s\n", info.BuildTime)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
