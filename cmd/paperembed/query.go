package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperembed"
	"github.com/arxivtools/paperembed/internal/errortypes"
	"github.com/arxivtools/paperembed/internal/pipeline"
	"github.com/arxivtools/paperembed/internal/vector"
)

func queryCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "query [text]",
		Short: "Embed one ad-hoc string and print its vector",
		Long: `Query encodes a single text string and prints the vector to stdout as
one line of comma-separated decimals. The text comes from the arguments or,
when none are given, from the QUERY environment variable. This mode never
touches the cache database; it exists for the serving component, which runs
it as a subprocess to embed search queries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				text = os.Getenv("QUERY")
			}
			if text == "" {
				return errortypes.EmptyContent(nil, "no query provided")
			}

			emb, err := paperembed.NewEmbedder(state.cfg, state.log)
			if err != nil {
				return err
			}

			vec, err := pipeline.EmbedQuery(cmd.Context(), emb, text)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), vector.FormatCSV(vec))
			return nil
		},
	}
}
