package search

import "context"

// Result is a single organic search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider runs a web search and returns up to limit results.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
