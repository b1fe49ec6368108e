package crawl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
)

// mockClient implements Client with overridable function fields.
type mockClient struct {
	startFn func(ctx context.Context, siteURL string, limit int, formats []string) (string, error)
	pollFn  func(ctx context.Context, statusURL string) (*domain.CrawlBatch, error)
}

func (m *mockClient) Start(ctx context.Context, siteURL string, limit int, formats []string) (string, error) {
	if m.startFn != nil {
		return m.startFn(ctx, siteURL, limit, formats)
	}
	return "http://status.local/job-1", nil
}

func (m *mockClient) Poll(ctx context.Context, statusURL string) (*domain.CrawlBatch, error) {
	if m.pollFn != nil {
		return m.pollFn(ctx, statusURL)
	}
	return &domain.CrawlBatch{Status: domain.CrawlStatusCompleted}, nil
}

func newTestService(client *mockClient, cfg Config) *Service {
	if cfg.PollDelay == 0 {
		cfg.PollDelay = time.Millisecond
	}
	return New(client, cfg, zap.NewNop())
}

func testPage(url, content string) domain.Page {
	return domain.Page{
		Content: content,
		URL:     url,
		Meta:    domain.PageMeta{Title: "t: " + url},
	}
}
