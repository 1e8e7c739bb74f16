package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrSearch marks provider failures: transport errors, non-2xx responses and
// unparseable payloads all wrap it.
var ErrSearch = errors.New("search failed")

const serpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPIProvider queries Google through the SerpAPI service.
type SerpAPIProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSerpAPIProvider builds a SerpAPI backed search provider.
func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey:   apiKey,
		endpoint: serpAPIEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

// Search runs one Google query and maps the organic results.
func (p *SerpAPIProvider) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: SerpAPI key is not configured", ErrSearch)
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(limit))
	params.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrSearch, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSearch, resp.StatusCode)
	}

	var payload serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearch, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrSearch, payload.Error)
	}

	results := make([]Result, 0, limit)
	for _, r := range payload.OrganicResults {
		if len(results) == limit {
			break
		}
		results = append(results, Result{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return results, nil
}
