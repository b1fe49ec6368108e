// Package retrieval answers "which pages matter for this question" by
// embedding the query, searching the vector index, and assembling the
// grounding prompt for the synthesizer.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
)

const defaultTopK = 3

// Context is the retrieval output handed to the answer synthesizer.
type Context struct {
	Prompt     string
	Results    []domain.SearchResult
	VectorSize int
}

// Service retrieves relevant pages for a query.
type Service struct {
	index  Index
	embed  Embedder
	topK   int
	logger *zap.Logger
}

// New creates a retrieval service. topK <= 0 selects the default of 3.
func New(index Index, embed Embedder, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = defaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, embed: embed, topK: topK, logger: logger}
}

// Retrieve embeds query, searches collection, and builds the grounding
// prompt. Returns domain.ErrNoResults when the search comes back empty.
func (s *Service) Retrieve(ctx context.Context, collection, query string) (*Context, error) {
	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	results, err := s.index.Search(ctx, collection, embResult.Embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrNoResults
	}

	s.logger.Debug("retrieval hit",
		zap.String("collection", collection),
		zap.Int("results", len(results)),
		zap.Float64("top_score", results[0].Score))

	return &Context{
		Prompt:     buildPrompt(query, results),
		Results:    results,
		VectorSize: len(embResult.Embedding),
	}, nil
}

func buildPrompt(query string, results []domain.SearchResult) string {
	var b strings.Builder

	b.WriteString("Based on the following documentation:\n\n")
	for _, r := range results {
		url := r.Page.URL
		if url == "" {
			url = "Unknown URL"
		}
		fmt.Fprintf(&b, "From %s:\n%s\n\n", url, r.Page.Content)
	}
	fmt.Fprintf(&b, "\nUser Question: %s\n\n", query)
	b.WriteString("Please provide a clear, concise answer that can be easily spoken out loud.")

	return b.String()
}
