package pipeline

import (
	"context"
	"fmt"

	"github.com/arxivtools/paperembed/internal/embedding"
	"github.com/arxivtools/paperembed/internal/errortypes"
	"github.com/arxivtools/paperembed/internal/paperstore"
	"github.com/arxivtools/paperembed/internal/vector"
)

// EmbedOne embeds exactly one stored paper by identifier and upserts the
// result. It fails when the paper does not exist or carries no text at all.
func EmbedOne(ctx context.Context, store paperstore.Store, embedder embedding.Embedder, id string) error {
	if err := store.EnsureEmbeddingsTable(); err != nil {
		return err
	}

	paper, err := store.GetPaper(id)
	if err != nil {
		return err
	}
	if paper.Title == "" && paper.Abstract == "" {
		return errortypes.EmptyContent(nil, fmt.Sprintf("paper %s has no title or abstract", id))
	}

	vecs, err := embedder.Embed(ctx, []string{BuildText(paper)})
	if err != nil {
		return err
	}

	if err := store.Begin(); err != nil {
		return err
	}
	if err := store.PutEmbedding(id, embedder.Name(), vector.Serialize(vecs[0])); err != nil {
		return err
	}
	return store.Commit()
}

// EmbedQuery encodes one ad-hoc text string. It never touches a store.
func EmbedQuery(ctx context.Context, embedder embedding.Embedder, text string) ([]float32, error) {
	vecs, err := embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}
