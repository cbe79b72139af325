// Package paperstore provides access to the paper cache database: the
// externally owned papers table and the embeddings table this tool maintains.
package paperstore

// Paper is one source record. Papers are created by an external ingestion
// process and are read-only here.
type Paper struct {
	ID       string
	Title    string
	Abstract string
}

// Store defines the operations the embedding pipeline needs from the cache.
type Store interface {
	// EnsureEmbeddingsTable creates the embeddings table if it does not
	// exist. Idempotent.
	EnsureEmbeddingsTable() error

	// SelectPending returns papers that have both a title and an abstract
	// and no stored embedding, in stable order. A positive limit caps the
	// result. The result is a point-in-time snapshot.
	SelectPending(limit int) ([]Paper, error)

	// GetPaper fetches one paper by identifier. It returns a
	// record-not-found error when the paper does not exist.
	GetPaper(id string) (Paper, error)

	// PutEmbedding upserts the vector blob for a paper. The embeddings
	// table is keyed by paper identifier alone, so a write under a
	// different model name replaces the previous vector.
	PutEmbedding(id, model string, blob []byte) error

	// CountEmbeddings reports how many papers currently have a vector.
	CountEmbeddings() (int, error)

	// Begin starts an explicit transaction; Commit ends it. The pipeline
	// owns commit granularity, so these are exposed rather than hidden
	// behind PutEmbedding.
	Begin() error
	Commit() error

	// Close releases the underlying connection.
	Close() error
}
