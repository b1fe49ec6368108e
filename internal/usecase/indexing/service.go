// Package indexing embeds crawled pages and upserts them into the vector
// index, one point per non-empty page.
package indexing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/metrics"
)

// Service indexes pages into a named collection.
type Service struct {
	index  Index
	embed  Embedder
	logger *zap.Logger
}

// New creates an indexing service.
func New(index Index, embed Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, embed: embed, logger: logger}
}

// IndexPages embeds and upserts every page with content into collection.
// Pages with empty content are skipped. Returns the number of indexed pages.
func (s *Service) IndexPages(ctx context.Context, collection string, pages []domain.Page) (int, error) {
	indexed := 0

	for _, page := range pages {
		if page.Content == "" {
			s.logger.Warn("skipping page without content", zap.String("url", page.URL))
			continue
		}

		result, err := s.embed.Embed(ctx, page.Content)
		if err != nil {
			return indexed, fmt.Errorf("%w: embed page %s: %w", domain.ErrIndexing, page.URL, err)
		}

		point := domain.IndexedPoint{
			ID:     uuid.NewString(),
			Vector: result.Embedding,
			Page:   page,
		}
		if err := s.index.Upsert(ctx, collection, point); err != nil {
			return indexed, fmt.Errorf("%w: upsert page %s: %w", domain.ErrIndexing, page.URL, err)
		}

		indexed++
		metrics.IndexedPagesTotal.Inc()
		s.logger.Debug("page indexed",
			zap.String("url", page.URL),
			zap.String("point_id", point.ID))
	}

	s.logger.Info("indexing finished",
		zap.String("collection", collection),
		zap.Int("indexed", indexed),
		zap.Int("skipped", len(pages)-indexed))

	return indexed, nil
}

// Count reports how many points collection currently holds.
func (s *Service) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.index.Count(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("%w: count points: %w", domain.ErrIndexing, err)
	}
	return n, nil
}
