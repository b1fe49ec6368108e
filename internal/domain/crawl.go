package domain

// Crawl job statuses reported by the crawl provider.
const (
	CrawlStatusScraping  = "scraping"
	CrawlStatusCompleted = "completed"
	CrawlStatusFailed    = "failed"
)

// CrawlBatch is one page of crawl job results. Next is a provider URL
// for the following page and is empty on the last batch.
type CrawlBatch struct {
	Status      string
	Completed   int
	Total       int
	CreditsUsed int
	Next        string
	Pages       []Page
}
