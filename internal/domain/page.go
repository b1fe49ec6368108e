package domain

// PageMeta carries the descriptive metadata extracted for a crawled page.
type PageMeta struct {
	Title       string
	Description string
	Language    string
	CrawlDate   string
}

// Page is one normalized documentation page produced by the crawler.
// It is immutable once emitted and consumed exactly once by the indexer.
type Page struct {
	Content string
	URL     string
	Meta    PageMeta
}

// IndexedPoint is one vector-store point built from a Page. Once upserted
// the point is owned by the vector index; the indexer keeps no reference.
type IndexedPoint struct {
	ID     string
	Vector []float32
	Page   Page
}
