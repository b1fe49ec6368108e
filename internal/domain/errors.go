package domain

import "errors"

var (
	// ErrConfiguration signals missing or invalid credentials/URLs at setup.
	ErrConfiguration = errors.New("configuration error")
	// ErrCollectionSetup signals a failure creating or validating the vector collection.
	ErrCollectionSetup = errors.New("collection setup failed")
	// ErrCrawl signals a transport or parsing failure during page ingestion.
	ErrCrawl = errors.New("documentation crawl failed")
	// ErrIndexing signals an embedding or upsert failure during setup.
	ErrIndexing = errors.New("indexing failed")
	// ErrNoResults signals that retrieval found no relevant documents.
	ErrNoResults = errors.New("no relevant documents found")
	// ErrSynthesis signals a failure in the answer, direction, or speech stage.
	ErrSynthesis = errors.New("answer synthesis failed")

	// ErrVectorDimMismatch signals a vector dimension mismatch against an existing collection.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrNotReady signals a query attempted before setup completed.
	ErrNotReady = errors.New("documentation has not been indexed yet")
)
