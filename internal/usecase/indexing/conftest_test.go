package indexing

import (
	"context"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
)

type mockIndex struct {
	upsertFn func(ctx context.Context, collection string, point domain.IndexedPoint) error
	countFn  func(ctx context.Context, collection string) (int, error)

	upserted []domain.IndexedPoint
}

func (m *mockIndex) Upsert(ctx context.Context, collection string, point domain.IndexedPoint) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, collection, point)
	}
	m.upserted = append(m.upserted, point)
	return nil
}

func (m *mockIndex) Count(ctx context.Context, collection string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, collection)
	}
	return len(m.upserted), nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0}, TotalTokens: 1}, nil
}

func newTestService(index *mockIndex, embed *mockEmbedder) *Service {
	return New(index, embed, zap.NewNop())
}
