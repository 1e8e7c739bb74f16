package contact

import (
	"context"
	"strings"

	"github.com/octobees/sales-automation/api/internal/webscraper"
)

// PageFetcher is the scraping dependency of the website strategy.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// WebsiteStrategy scrapes the company website for published addresses.
// Addresses on the company's own domain win over third-party ones.
type WebsiteStrategy struct {
	fetcher PageFetcher
}

// NewWebsiteStrategy builds the scraping strategy.
func NewWebsiteStrategy(fetcher PageFetcher) *WebsiteStrategy {
	return &WebsiteStrategy{fetcher: fetcher}
}

// Name identifies the strategy in logs.
func (s *WebsiteStrategy) Name() string { return "website" }

// Resolve fetches the site and extracts addresses from the raw HTML.
func (s *WebsiteStrategy) Resolve(ctx context.Context, req Request) (string, error) {
	if req.Website == "" {
		return "", nil
	}

	body, err := s.fetcher.Fetch(ctx, req.Website)
	if err != nil {
		return "", err
	}

	emails := webscraper.ExtractEmails(string(body))
	if len(emails) == 0 {
		return "", nil
	}

	if req.Domain != "" {
		for _, email := range emails {
			if strings.HasSuffix(email, "@"+req.Domain) {
				return email, nil
			}
		}
	}
	return emails[0], nil
}
