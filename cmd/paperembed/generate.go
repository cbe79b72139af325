package main

import (
	"github.com/spf13/cobra"

	"github.com/arxivtools/paperembed"
	"github.com/arxivtools/paperembed/internal/errortypes"
	"github.com/arxivtools/paperembed/internal/pipeline"
	"github.com/arxivtools/paperembed/internal/telemetry"
)

func generateCmd(state *appState) *cobra.Command {
	var limitFlag int
	var batchSizeFlag int

	cmd := &cobra.Command{
		Use:   "generate [cache-dir]",
		Short: "Embed every paper that has no stored vector",
		Long: `Generate runs the batch pipeline: it selects papers with a title and
abstract but no embeddings row, encodes them in batches, and upserts the
vectors. One progress line per batch is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := state.cfg.Store.Path
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errortypes.Config(nil, "no cache location given: pass <cache-dir> or set store.path")
			}

			if limitFlag > 0 {
				state.cfg.Batch.Limit = limitFlag
			}
			if batchSizeFlag > 0 {
				state.cfg.Batch.Size = batchSizeFlag
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

			metrics := telemetry.NewCollector()
			runner := pipeline.New(store, emb, pipeline.Options{
				BatchSize: state.cfg.Batch.Size,
				Limit:     state.cfg.Batch.Limit,
				Progress:  cmd.OutOrStdout(),
				Logger:    state.log,
				Metrics:   metrics,
			})

			_, err = runner.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "l", 0, "max papers to process (0 = all)")
	cmd.Flags().IntVarP(&batchSizeFlag, "batch-size", "b", 0, "papers per model call (default 32)")

	return cmd
}
