// Package paperembed wires together the components of the paper embedding
// tool: the cache store, the embedding model adapter, and the batch pipeline.
// The cmd/paperembed CLI is a thin layer over this package.
package paperembed

import (
	"github.com/arxivtools/paperembed/internal/config"
	"github.com/arxivtools/paperembed/internal/embedding"
	"github.com/arxivtools/paperembed/internal/logger"
	"github.com/arxivtools/paperembed/internal/paperstore"
)

// Version is the release version, overridable at link time.
var Version = "dev"

// NewEmbedder constructs and initializes the embedder selected by cfg.
// Initialization performs the model load check, so a returned embedder is
// ready to encode.
func NewEmbedder(cfg *config.Config, log *logger.Logger) (embedding.Embedder, error) {
	emb, err := embedding.NewFromProvider(embedding.Options{
		Provider: cfg.Embedder.Provider,
		Model:    cfg.Embedder.Model,
		BaseURL:  cfg.Embedder.BaseURL,
		APIKey:   cfg.Embedder.ApiKey,
		Dims:     cfg.Embedder.Dimensions,
	})
	if err != nil {
		return nil, err
	}

	embLog := log.WithContext("embedder")
	embLog.Info("loading model: %s", emb.Name())
	if err := emb.Initialize(); err != nil {
		return nil, err
	}
	embLog.Info("model loaded, embedding dimension: %d", emb.Dims())
	return emb, nil
}

// OpenStore opens the cache database at path (a cache directory or a
// database file). The caller owns the returned store and must close it.
func OpenStore(path string, log *logger.Logger) (*paperstore.SQLiteStore, error) {
	store, err := paperstore.Open(path)
	if err != nil {
		return nil, err
	}
	log.WithContext("store").Info("opened %s", store.Path())
	return store, nil
}
