// Package pipeline orchestrates the full voice documentation flow: setup
// (provision, crawl, index) and query answering. Setup failures abort and
// propagate; query failures always come back as error bundles.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/metrics"
)

// Service is the pipeline orchestrator.
type Service struct {
	colls      Collections
	prober     DimensionProber
	crawler    Crawler
	indexer    Indexer
	retriever  Retriever
	synth      Synthesizer
	collection string
	logger     *zap.Logger

	ready atomic.Bool
}

// New creates a pipeline orchestrator over collection.
func New(
	colls Collections, prober DimensionProber,
	crawler Crawler, indexer Indexer,
	retriever Retriever, synth Synthesizer,
	collection string, logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		colls:      colls,
		prober:     prober,
		crawler:    crawler,
		indexer:    indexer,
		retriever:  retriever,
		synth:      synth,
		collection: collection,
		logger:     logger,
	}
}

// Ready reports whether Setup has completed successfully.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Setup provisions the collection, crawls siteURL, and indexes every page.
// It fails fast: the first stage error aborts the run and the pipeline
// stays not ready.
func (s *Service) Setup(ctx context.Context, siteURL string) error {
	dimension, err := s.prober.ProbeDimension(ctx)
	if err != nil {
		return fmt.Errorf("%w: probe embedding dimension: %w", domain.ErrCollectionSetup, err)
	}

	if err := s.colls.EnsureCollection(ctx, s.collection, dimension); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCollectionSetup, err)
	}

	s.logger.Info("collection ready",
		zap.String("collection", s.collection),
		zap.Int("dimension", dimension))

	pages, err := s.crawler.Crawl(ctx, siteURL)
	if err != nil {
		return err
	}

	indexed, err := s.indexer.IndexPages(ctx, s.collection, pages)
	if err != nil {
		return err
	}

	s.ready.Store(true)
	s.logger.Info("pipeline ready",
		zap.String("site_url", siteURL),
		zap.Int("pages_indexed", indexed))

	return nil
}

// Ask answers query against the indexed documentation. It always returns a
// bundle; failures are reported in Status and Error.
func (s *Service) Ask(ctx context.Context, query string) domain.AnswerBundle {
	start := time.Now()

	if !s.ready.Load() {
		return s.errorBundle(start, query, domain.ErrNotReady.Error())
	}

	rctx, err := s.retriever.Retrieve(ctx, s.collection, query)
	if err != nil {
		s.logger.Warn("retrieval failed", zap.String("query", query), zap.Error(err))
		return s.errorBundle(start, query, err.Error())
	}

	answer, err := s.synth.Synthesize(ctx, rctx.Prompt)
	if err != nil {
		s.logger.Warn("synthesis failed", zap.String("query", query), zap.Error(err))
		return s.errorBundle(start, query, err.Error())
	}

	sources := make([]string, 0, len(rctx.Results))
	for _, r := range rctx.Results {
		url := r.Page.URL
		if url == "" {
			url = "Unknown URL"
		}
		sources = append(sources, url)
	}

	metrics.QueryDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	s.logger.Info("query answered",
		zap.String("query", query),
		zap.Int("sources", len(sources)),
		zap.String("audio_path", answer.AudioPath))

	return domain.AnswerBundle{
		Status:           domain.StatusSuccess,
		TextResponse:     answer.Text,
		SpeechDirections: answer.Directions,
		AudioPath:        answer.AudioPath,
		Sources:          sources,
		Diagnostics: &domain.Diagnostics{
			VectorSize:   rctx.VectorSize,
			ResultsFound: len(rctx.Results),
			Collection:   s.collection,
		},
	}
}

func (s *Service) errorBundle(start time.Time, query, msg string) domain.AnswerBundle {
	metrics.QueryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
	return domain.ErrorBundle(query, msg)
}
