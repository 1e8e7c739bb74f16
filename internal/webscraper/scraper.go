package webscraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// ErrFetch marks any scraping failure: transport errors, non-2xx responses
// and unparseable documents all wrap it.
var ErrFetch = errors.New("fetch failed")

const maxTextContent = 2000

// CompanyInfo is the structured summary extracted from a company website.
type CompanyInfo struct {
	Title       string
	Description string
	TextContent string
	Emails      []string
}

// Scraper fetches public pages with a shared politeness throttle. The rate
// limiter spaces requests while the semaphore caps in-flight fetches.
type Scraper struct {
	client    *http.Client
	limiter   *rate.Limiter
	sem       chan struct{}
	userAgent string
}

// New builds a scraper. delay is the minimum spacing between requests and
// maxConcurrent caps simultaneous fetches.
func New(delay time.Duration, maxConcurrent int, userAgent string) *Scraper {
	if delay <= 0 {
		delay = time.Second
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; LeadResearchBot/1.0)"
	}

	return &Scraper{
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(delay), maxConcurrent),
		sem:       make(chan struct{}, maxConcurrent),
		userAgent: userAgent,
	}
}

// Fetch retrieves a page body after waiting for the throttle.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrFetch, resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return body, nil
}

// ExtractCompanyInfo fetches a company homepage and pulls out the title, meta
// description, a trimmed slice of visible text and any addresses on the page.
func (s *Scraper) ExtractCompanyInfo(ctx context.Context, pageURL string) (CompanyInfo, error) {
	body, err := s.Fetch(ctx, pageURL)
	if err != nil {
		return CompanyInfo{}, err
	}
	return ParseCompanyInfo(body)
}

// ParseCompanyInfo extracts structured info from raw HTML.
func ParseCompanyInfo(body []byte) (CompanyInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return CompanyInfo{}, fmt.Errorf("%w: parse html: %v", ErrFetch, err)
	}

	info := CompanyInfo{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		info.Description = strings.TrimSpace(desc)
	}

	doc.Find("script, style, noscript").Remove()
	text := collapseWhitespace(doc.Find("body").Text())
	if len(text) > maxTextContent {
		text = text[:maxTextContent]
	}
	info.TextContent = text
	info.Emails = ExtractEmails(string(body))
	return info, nil
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// ExtractEmails returns the distinct email addresses found in text, in order
// of first appearance.
func ExtractEmails(text string) []string {
	seen := make(map[string]struct{})
	var emails []string
	for _, match := range emailPattern.FindAllString(text, -1) {
		lower := strings.ToLower(match)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		emails = append(emails, lower)
	}
	return emails
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
