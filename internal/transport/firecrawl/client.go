// Package firecrawl is a thin REST client for the Firecrawl crawl API.
// A crawl is started with a site URL and polled through the status URL
// the provider returns; large jobs are paginated through Next links.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
)

const defaultTimeout = 60 * time.Second

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// Start submits a crawl job and returns the status URL to poll.
func (c *Client) Start(ctx context.Context, siteURL string, limit int, formats []string) (string, error) {
	body, err := json.Marshal(crawlRequest{
		URL:           siteURL,
		Limit:         limit,
		ScrapeOptions: scrapeOptions{Formats: formats},
	})
	if err != nil {
		return "", fmt.Errorf("marshal crawl request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/crawl", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build crawl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var started crawlStarted
	if err := c.do(req, &started); err != nil {
		return "", fmt.Errorf("start crawl: %w", err)
	}
	if !started.Success || started.URL == "" {
		return "", fmt.Errorf("start crawl: provider rejected job for %s", siteURL)
	}

	c.logger.Debug("crawl job started",
		zap.String("job_id", started.ID),
		zap.String("site_url", siteURL))

	return started.URL, nil
}

// Poll fetches one batch of crawl results from a status or Next URL.
func (c *Client) Poll(ctx context.Context, statusURL string) (*domain.CrawlBatch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	var status crawlStatus
	if err := c.do(req, &status); err != nil {
		return nil, fmt.Errorf("poll crawl: %w", err)
	}

	return toBatch(&status), nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
