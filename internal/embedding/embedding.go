// Package embedding wraps the pretrained sentence-encoding models behind a
// single Embedder interface. The batch pipeline and the single-item entry
// points both talk to a model only through this package.
package embedding

import "context"

// Embedder turns texts into fixed-dimension vector embeddings.
type Embedder interface {
	// Initialize resolves the underlying model. It fails with a model-load
	// error when the model or its backend cannot be reached.
	Initialize() error

	// Embed returns exactly one vector per input text, in input order.
	// Empty input strings still produce a vector.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dims is the output dimension of the model.
	Dims() int

	// Name uniquely identifies the model, e.g. "ollama-all-minilm".
	// It is recorded alongside every stored vector.
	Name() string
}
