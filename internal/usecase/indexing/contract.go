package indexing

import (
	"context"

	"github.com/docvoice/docvoice/internal/domain"
)

// Index writes embedded pages into the vector store.
type Index interface {
	Upsert(ctx context.Context, collection string, point domain.IndexedPoint) error
	Count(ctx context.Context, collection string) (int, error)
}

// Embedder vectorizes page content.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
