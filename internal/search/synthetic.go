package search

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// SyntheticProvider fabricates deterministic results so discovery keeps
// working without a search key. The same query always yields the same hits.
type SyntheticProvider struct{}

// NewSyntheticProvider returns the offline search provider.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{}
}

var syntheticSuffixes = []string{"Labs", "Systems", "Group", "Solutions", "Partners", "Works", "Dynamics"}

// Search returns limit fabricated companies seeded by the query text.
func (p *SyntheticProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(query))))
	seed := h.Sum32()

	results := make([]Result, 0, limit)
	for i := 0; i < limit; i++ {
		suffix := syntheticSuffixes[int(seed+uint32(i))%len(syntheticSuffixes)]
		name := fmt.Sprintf("Acme %s %d", suffix, seed%900+uint32(i)+100)
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		results = append(results, Result{
			Title:   name,
			URL:     fmt.Sprintf("https://%s.example.com", slug),
			Snippet: fmt.Sprintf("%s — results for %q", name, query),
		})
	}
	return results, nil
}
