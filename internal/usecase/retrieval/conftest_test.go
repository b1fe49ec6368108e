package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
)

type mockIndex struct {
	searchFn func(ctx context.Context, collection string, vector []float32, k int) ([]domain.SearchResult, error)
}

func (m *mockIndex) Search(ctx context.Context, collection string, vector []float32, k int) ([]domain.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, collection, vector, k)
	}
	return nil, nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.5, 0.5}}, nil
}

func newTestService(index *mockIndex, embed *mockEmbedder, topK int) *Service {
	return New(index, embed, topK, zap.NewNop())
}

func searchResult(url, content string, score float64) domain.SearchResult {
	return domain.SearchResult{
		Page:  domain.Page{URL: url, Content: content},
		Score: score,
	}
}
