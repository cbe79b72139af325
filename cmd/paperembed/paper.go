package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperembed"
	"github.com/arxivtools/paperembed/internal/pipeline"
)

func paperCmd(state *appState) *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "paper <id>",
		Short: "Embed exactly one stored paper by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			path := storePath
			if path == "" {
				path = state.cfg.Store.Path
			}
			if path == "" {
				path = "."
			}

			store, err := paperembed.OpenStore(path, state.log)
			if err != nil {
				return err
			}
			defer store.Close()

			emb, err := paperembed.NewEmbedder(state.cfg, state.log)
			if err != nil {
				return err
			}

			if err := pipeline.EmbedOne(cmd.Context(), store, emb, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: embedded %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&storePath, "store", "s", "", "cache directory or database file (default: config store path, then current directory)")

	return cmd
}
