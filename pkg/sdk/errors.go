package docvoice

import "github.com/docvoice/docvoice/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrConfiguration          = domain.ErrConfiguration
	ErrCollectionSetup        = domain.ErrCollectionSetup
	ErrCrawl                  = domain.ErrCrawl
	ErrIndexing               = domain.ErrIndexing
	ErrNoResults              = domain.ErrNoResults
	ErrSynthesis              = domain.ErrSynthesis
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrNotReady               = domain.ErrNotReady
)
