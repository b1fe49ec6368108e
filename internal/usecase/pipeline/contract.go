package pipeline

import (
	"context"

	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/usecase/retrieval"
	"github.com/docvoice/docvoice/internal/usecase/synthesis"
)

// Collections provisions the vector collection used by the pipeline.
type Collections interface {
	EnsureCollection(ctx context.Context, name string, dimension int) error
}

// DimensionProber reports the embedding dimension of the configured model.
type DimensionProber interface {
	ProbeDimension(ctx context.Context) (int, error)
}

// Crawler produces normalized pages from a documentation site.
type Crawler interface {
	Crawl(ctx context.Context, siteURL string) ([]domain.Page, error)
}

// Indexer embeds and stores pages, returning how many were indexed.
type Indexer interface {
	IndexPages(ctx context.Context, collection string, pages []domain.Page) (int, error)
}

// Retriever finds relevant pages and builds the grounding prompt.
type Retriever interface {
	Retrieve(ctx context.Context, collection, query string) (*retrieval.Context, error)
}

// Synthesizer turns a grounding prompt into text, directions, and audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, prompt string) (*synthesis.Answer, error)
}
