package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// Vectors have a fixed dimension per provider instance and are
// deterministic for a given model.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
