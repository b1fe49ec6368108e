package crawl

import (
	"context"

	"github.com/docvoice/docvoice/internal/domain"
)

// Client drives a remote crawl job. Start submits the job and returns the
// status URL; Poll fetches one result batch from a status or cursor URL.
type Client interface {
	Start(ctx context.Context, siteURL string, limit int, formats []string) (string, error)
	Poll(ctx context.Context, statusURL string) (*domain.CrawlBatch, error)
}
