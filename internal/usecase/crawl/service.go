// Package crawl turns a documentation site URL into normalized pages by
// driving a remote crawl job and paging through its result cursors.
package crawl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/metrics"
)

const (
	defaultPageLimit = 5
	defaultPollDelay = 1 * time.Second
)

var defaultFormats = []string{"markdown", "html"}

// Config tunes one crawl run.
type Config struct {
	PageLimit int
	Formats   []string
	PollDelay time.Duration
	// OutputDir, when set, receives one <uuid>.md file per crawled page.
	OutputDir string
}

// Service crawls documentation sites through a remote crawl provider.
type Service struct {
	client Client
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates a crawl service.
func New(client Client, cfg Config, logger *zap.Logger) *Service {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = defaultPageLimit
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = defaultFormats
	}
	if cfg.PollDelay <= 0 {
		cfg.PollDelay = defaultPollDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, cfg: cfg, logger: logger, now: time.Now}
}

// Crawl runs a full crawl of siteURL and returns every page the job emitted.
func (s *Service) Crawl(ctx context.Context, siteURL string) ([]domain.Page, error) {
	statusURL, err := s.client.Start(ctx, siteURL, s.cfg.PageLimit, s.cfg.Formats)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCrawl, err)
	}

	s.logger.Info("crawl started",
		zap.String("site_url", siteURL),
		zap.Int("page_limit", s.cfg.PageLimit))

	var pages []domain.Page
	pollURL := statusURL

	for {
		batch, err := s.client.Poll(ctx, pollURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCrawl, err)
		}
		if batch.Status == domain.CrawlStatusFailed {
			return nil, fmt.Errorf("%w: job reported failure for %s", domain.ErrCrawl, siteURL)
		}

		// Job still running (pending or scraping) and no cursor yet: the
		// batch carries no final pages, so poll the same URL again.
		if batch.Status != domain.CrawlStatusCompleted && batch.Next == "" {
			if err := s.wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrCrawl, err)
			}
			continue
		}

		collected, err := s.collect(batch)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCrawl, err)
		}
		pages = append(pages, collected...)

		s.logger.Info("crawl progress",
			zap.String("status", batch.Status),
			zap.Int("completed", batch.Completed),
			zap.Int("total", batch.Total),
			zap.Int("credits_used", batch.CreditsUsed))
		metrics.CrawlCreditsUsed.Set(float64(batch.CreditsUsed))

		if batch.Next == "" {
			break
		}
		pollURL = batch.Next

		if err := s.wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCrawl, err)
		}
	}

	s.logger.Info("crawl finished",
		zap.String("site_url", siteURL),
		zap.Int("pages", len(pages)))

	return pages, nil
}

func (s *Service) collect(batch *domain.CrawlBatch) ([]domain.Page, error) {
	crawlDate := s.now().UTC().Format(time.RFC3339)

	pages := make([]domain.Page, 0, len(batch.Pages))
	for _, page := range batch.Pages {
		if page.Meta.Language == "" {
			page.Meta.Language = domain.DefaultLanguage
		}
		page.Meta.CrawlDate = crawlDate

		if s.cfg.OutputDir != "" {
			if err := s.persist(page); err != nil {
				return nil, err
			}
		}

		pages = append(pages, page)
		metrics.CrawlPagesTotal.Inc()
	}
	return pages, nil
}

func (s *Service) persist(page domain.Page) error {
	name := uuid.NewString() + ".md"
	path := filepath.Join(s.cfg.OutputDir, name)

	if err := os.WriteFile(path, []byte(page.Content), 0o600); err != nil {
		return fmt.Errorf("persist page %s: %w", page.URL, err)
	}

	s.logger.Debug("page persisted",
		zap.String("url", page.URL),
		zap.String("file", name))
	return nil
}

func (s *Service) wait(ctx context.Context) error {
	timer := time.NewTimer(s.cfg.PollDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
