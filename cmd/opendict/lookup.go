package main

import (
	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/app"
	"github.com/jqhoogland/open-dictionary/internal/parser"
	"github.com/jqhoogland/open-dictionary/internal/service/lookup"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var (
		lang string
		wiki string
	)

	cmd := &cobra.Command{
		Use:   "lookup WORD [WORD...]",
		Short: "Fetch and parse words, printing JSON",
		Long: `Fetch pages from the wiki and print their entries as JSON.

No database is used. Several words are looked up concurrently and printed
as one array of per-word results.

Examples:
  opendict lookup hallo
  opendict lookup --lang nl hallo dag
  opendict lookup --wiki de --lang de Hallo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if wiki != "" {
				cfg.Wiktionary.Wiki = wiki
				cfg.Wiktionary.BaseURL = ""
			}

			svc := app.NewLookupService(cfg, logger, nil, nil)

			if len(args) == 1 {
				res, err := svc.Lookup(cmd.Context(), args[0], lang)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}

			items := make([]lookup.Item, len(args))
			for i, w := range args {
				items[i] = lookup.Item{Word: w, Lang: lang}
			}
			results, err := svc.BatchLookup(cmd.Context(), items)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), batchOutput(results))
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "language code of the entries")
	cmd.Flags().StringVar(&wiki, "wiki", "", "wiki subdomain to fetch from (default: wiktionary.wiki)")
	return cmd
}

type batchItemOutput struct {
	Word  string `json:"word"`
	Lang  string `json:"lang"`
	Error string `json:"error,omitempty"`
	*parser.Result
}

func batchOutput(results []lookup.ItemResult) []batchItemOutput {
	out := make([]batchItemOutput, len(results))
	for i, r := range results {
		o := batchItemOutput{Word: r.Item.Word, Lang: r.Item.Lang}
		if r.Err != nil {
			o.Error = r.Err.Error()
		} else {
			o.Result = r.Result
		}
		out[i] = o
	}
	return out
}
