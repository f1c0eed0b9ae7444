package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jqhoogland/open-dictionary/internal/parser"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var (
		word string
		lang string
	)

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Parse wikitext from a file or stdin, printing JSON",
		Long: `Parse a page's wikitext without fetching anything.

FILE defaults to stdin ("-"). The word defaults to the file name without
its extension.

Examples:
  opendict parse hallo.wiki
  curl -s '...action=raw' | opendict parse --word hallo --lang nl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := opts.load()
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			if word == "" && path != "-" {
				word = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			if word == "" {
				return fmt.Errorf("--word is required when reading stdin")
			}

			res, err := parser.New(logger, nil, nil).Parse(word, text, lang)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&word, "word", "w", "", "page title (default: FILE without extension)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "language code of the entries")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
