package retrieval

import (
	"context"

	"github.com/docvoice/docvoice/internal/domain"
)

// Index runs KNN search over the vector store.
type Index interface {
	Search(ctx context.Context, collection string, vector []float32, k int) ([]domain.SearchResult, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
