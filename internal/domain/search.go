package domain

// SearchResult is a single similarity hit with its page payload attached.
// Results are ranked descending by score and are ephemeral: produced fresh
// per query, never persisted.
type SearchResult struct {
	Page  Page
	Score float64
}
