package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperembed"
	"github.com/arxivtools/paperembed/internal/config"
	"github.com/arxivtools/paperembed/internal/logger"
	"github.com/arxivtools/paperembed/internal/util"
)

// appState carries what PersistentPreRunE resolves for the subcommands.
type appState struct {
	cfg *config.Config
	log *logger.Logger
}

func rootCmd() *cobra.Command {
	state := &appState{}

	var configPath string
	var providerFlag string
	var modelFlag string
	var baseURLFlag string

	cmd := &cobra.Command{
		Use:     "paperembed",
		Short:   "Generate sentence embeddings for cached arXiv papers",
		Version: paperembed.Version,
		Long: `paperembed encodes paper titles and abstracts into fixed-width
float32 vectors and stores them in the cache database, for use by an
external semantic-search component.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithPath(configPath)
			if err != nil {
				return err
			}

			if providerFlag != "" {
				cfg.Embedder.Provider = providerFlag
			}
			if modelFlag != "" {
				cfg.Embedder.Model = modelFlag
			}
			if baseURLFlag != "" {
				cfg.Embedder.BaseURL = baseURLFlag
			}

			log := logger.New(os.Stderr,
				logger.ParseLevel(cfg.Logging.Level),
				logger.ParseFormat(cfg.Logging.Format))
			log = log.WithField("run_id", util.NewRunID())
			logger.SetDefault(log)

			state.cfg = cfg
			state.log = log
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFilename, "path to config file")
	cmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "embedding provider: auto, ollama, openai, mock")
	cmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "embedding model override")
	cmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Ollama base URL override")

	cmd.AddCommand(generateCmd(state))
	cmd.AddCommand(queryCmd(state))
	cmd.AddCommand(paperCmd(state))

	return cmd
}
