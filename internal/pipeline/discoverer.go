package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sales-automation/api/internal/contact"
	"github.com/octobees/sales-automation/api/internal/gemini"
	"github.com/octobees/sales-automation/api/internal/search"
	"github.com/octobees/sales-automation/api/internal/webscraper"
)

// ErrDiscovery marks a fatal discovery failure. A failed run produces zero
// leads; it never falls through to qualification.
var ErrDiscovery = errors.New("lead discovery failed")

const (
	queriesGenerated  = 5
	queriesExecuted   = 3
	resultsPerQuery   = 5
	candidatesEnriched = 10
)

// CompanyEnricher scrapes a candidate's website for extra context.
type CompanyEnricher interface {
	ExtractCompanyInfo(ctx context.Context, pageURL string) (webscraper.CompanyInfo, error)
}

// Discoverer turns campaign criteria into a list of candidate companies.
type Discoverer struct {
	gen        gemini.Generator
	provider   search.Provider
	fallback   search.Provider
	enricher   CompanyEnricher
	maxResults int
}

// NewDiscoverer wires a discoverer. fallback handles per-query provider
// failures and may equal provider when no real search is configured.
func NewDiscoverer(gen gemini.Generator, provider, fallback search.Provider, enricher CompanyEnricher, maxResults int) *Discoverer {
	if maxResults <= 0 {
		maxResults = 50
	}
	return &Discoverer{
		gen:        gen,
		provider:   provider,
		fallback:   fallback,
		enricher:   enricher,
		maxResults: maxResults,
	}
}

// Discover generates search queries for the criteria, executes a subset and
// maps the hits to partially enriched candidates. Results are kept in query
// order; overlapping queries may surface the same company more than once.
func (d *Discoverer) Discover(ctx context.Context, criteria Criteria) ([]Candidate, error) {
	queries, err := d.generateQueries(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}
	if len(queries) == 0 {
		return nil, nil
	}
	if len(queries) > queriesExecuted {
		queries = queries[:queriesExecuted]
	}

	var candidates []Candidate
	for _, query := range queries {
		results, err := d.provider.Search(ctx, query, resultsPerQuery)
		if err != nil {
			log.Printf("level=warn msg=\"search query failed, using fallback\" query=%q error=%q", query, err)
			if results, err = d.fallback.Search(ctx, query, resultsPerQuery); err != nil {
				log.Printf("level=warn msg=\"fallback search failed\" query=%q error=%q", query, err)
				continue
			}
		}

		for _, r := range results {
			candidates = append(candidates, Candidate{
				CompanyName: cleanCompanyName(r.Title),
				Website:     r.URL,
				Domain:      contact.DomainFromURL(r.URL),
				Snippet:     r.Snippet,
				Source:      query,
			})
		}
	}

	if len(candidates) > d.maxResults {
		candidates = candidates[:d.maxResults]
	}

	d.enrich(ctx, candidates)
	return candidates, nil
}

func (d *Discoverer) generateQueries(ctx context.Context, criteria Criteria) ([]string, error) {
	prompt := fmt.Sprintf(`Generate %d Google search queries to find companies matching this profile:
- Industry: %s
- Location: %s
- Company size: %s

The queries should surface company websites, not directories or job boards.
Return a JSON array of %d query strings.`,
		queriesGenerated,
		criteria.industryOrAny(),
		criteria.locationOrAny(),
		criteria.companySizeOrAny(),
		queriesGenerated,
	)

	var queries []string
	if err := d.gen.GenerateJSON(ctx, prompt, &queries); err != nil {
		return nil, err
	}

	cleaned := queries[:0]
	for _, q := range queries {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	return cleaned, nil
}

// enrich scrapes the first few candidate websites. Failures are recorded on
// the candidate and never abort discovery.
func (d *Discoverer) enrich(ctx context.Context, candidates []Candidate) {
	if d.enricher == nil {
		return
	}
	limit := candidatesEnriched
	if len(candidates) < limit {
		limit = len(candidates)
	}
	for i := 0; i < limit; i++ {
		info, err := d.enricher.ExtractCompanyInfo(ctx, candidates[i].Website)
		if err != nil {
			candidates[i].EnrichmentError = err.Error()
			continue
		}
		candidates[i].Description = info.Description
		candidates[i].TextContent = info.TextContent
		if candidates[i].CompanyName == "" && info.Title != "" {
			candidates[i].CompanyName = cleanCompanyName(info.Title)
		}
	}
}

// cleanCompanyName strips the tagline a page title usually carries after a
// separator.
func cleanCompanyName(title string) string {
	name := strings.TrimSpace(title)
	for _, sep := range []string{" | ", " - ", " – ", " — ", ": "} {
		if i := strings.Index(name, sep); i > 0 {
			name = name[:i]
		}
	}
	return strings.TrimSpace(name)
}
