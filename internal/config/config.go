// Package config loads the paperembed configuration from an optional JSON
// config file, PAPEREMBED-prefixed environment variables, and defaults.
package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/localrivet/configurator"

	"github.com/arxivtools/paperembed/internal/errortypes"
)

// Default configuration values.
const (
	DefaultConfigFilename = ".paperembedconfig"
	DefaultBatchSize      = 32
	DefaultDimensions     = 384
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config represents the paperembed configuration.
type Config struct {
	// Store contains cache-database configuration.
	Store struct {
		// Path is the cache directory or database file. Usually supplied
		// as a CLI argument instead.
		Path string `json:"path" env:"STORE_PATH"`
	} `json:"store"`

	// Embedder selects and configures the embedding backend.
	Embedder struct {
		// Provider is one of auto, ollama, openai, mock.
		Provider string `json:"provider" env:"EMBEDDER_PROVIDER"`

		// Model overrides the provider's default model.
		Model string `json:"model" env:"EMBEDDER_MODEL"`

		// BaseURL overrides the Ollama server address.
		BaseURL string `json:"base_url" env:"EMBEDDER_BASE_URL"`

		// ApiKey is the OpenAI API key (OPENAI_API_KEY also works).
		ApiKey string `json:"api_key" env:"EMBEDDER_API_KEY"`

		// Dimensions is the model's output dimension.
		Dimensions int `json:"dimensions" env:"EMBEDDER_DIMENSIONS" validate:"min:1"`
	} `json:"embedder"`

	// Batch configures the batch pipeline.
	Batch struct {
		// Size is how many papers are encoded per model call.
		Size int `json:"size" env:"BATCH_SIZE" validate:"min:1"`

		// Limit caps how many papers one run processes; 0 means all.
		Limit int `json:"limit" env:"BATCH_LIMIT"`
	} `json:"batch"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum level to emit ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL"`

		// Format is "text" or "json".
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`
}

// New returns a Config populated with defaults.
func New() *Config {
	cfg := &Config{}
	cfg.Embedder.Provider = "auto"
	cfg.Embedder.Dimensions = DefaultDimensions
	cfg.Batch.Size = DefaultBatchSize
	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat
	return cfg
}

// Load loads the configuration from the default file location.
func Load() (*Config, error) {
	return LoadWithPath(DefaultConfigFilename)
}

// LoadWithPath loads the configuration from configPath. A missing file is
// not an error; defaults and environment variables still apply.
func LoadWithPath(configPath string) (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfg := New()

	if configPath == DefaultConfigFilename {
		if foundPath, err := configurator.FindConfigFile(configPath); err == nil {
			configPath = foundPath
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyEnvOnly(cfg, stdLogger)
		return cfg, nil
	}

	loader := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider()).
		WithProvider(configurator.NewFileProvider(configPath)).
		WithProvider(configurator.NewEnvProvider("PAPEREMBED")).
		WithValidator(configurator.NewDefaultValidator())

	if err := loader.Load(context.Background(), cfg); err != nil {
		return nil, errortypes.Config(err, "failed to load configuration")
	}
	return cfg, nil
}

// applyEnvOnly runs the provider chain without a file provider.
func applyEnvOnly(cfg *Config, stdLogger *slog.Logger) {
	loader := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider()).
		WithProvider(configurator.NewEnvProvider("PAPEREMBED"))

	// Environment-only loading keeps the defaults when nothing is set, so
	// a load failure here only loses overrides.
	if err := loader.Load(context.Background(), cfg); err != nil {
		stdLogger.Warn("env configuration not applied", "error", err)
	}
}
