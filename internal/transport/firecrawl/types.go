package firecrawl

import "github.com/docvoice/docvoice/internal/domain"

type crawlRequest struct {
	URL           string        `json:"url"`
	Limit         int           `json:"limit"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

type crawlStarted struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	URL     string `json:"url"`
}

type crawlStatus struct {
	Status      string     `json:"status"`
	Completed   int        `json:"completed"`
	Total       int        `json:"total"`
	CreditsUsed int        `json:"creditsUsed"`
	Next        string     `json:"next"`
	Data        []pageItem `json:"data"`
}

type pageItem struct {
	Markdown string       `json:"markdown"`
	HTML     string       `json:"html"`
	Metadata pageMetadata `json:"metadata"`
}

type pageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	SourceURL   string `json:"sourceURL"`
}

func toBatch(s *crawlStatus) *domain.CrawlBatch {
	batch := &domain.CrawlBatch{
		Status:      s.Status,
		Completed:   s.Completed,
		Total:       s.Total,
		CreditsUsed: s.CreditsUsed,
		Next:        s.Next,
		Pages:       make([]domain.Page, 0, len(s.Data)),
	}

	for _, item := range s.Data {
		content := item.Markdown
		if content == "" {
			content = item.HTML
		}
		batch.Pages = append(batch.Pages, domain.Page{
			Content: content,
			URL:     item.Metadata.SourceURL,
			Meta: domain.PageMeta{
				Title:       item.Metadata.Title,
				Description: item.Metadata.Description,
				Language:    item.Metadata.Language,
			},
		})
	}

	return batch
}
