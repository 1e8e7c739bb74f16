package pipeline

import "github.com/octobees/sales-automation/api/internal/entity"

// Criteria is the campaign targeting input for a run.
type Criteria struct {
	Industry    string
	Location    string
	CompanySize string
}

func (c Criteria) industryOrAny() string    { return orAny(c.Industry) }
func (c Criteria) locationOrAny() string    { return orAny(c.Location) }
func (c Criteria) companySizeOrAny() string { return orAny(c.CompanySize) }

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// Candidate is a company surfaced by discovery, before qualification.
type Candidate struct {
	CompanyName string
	Website     string
	Domain      string
	Snippet     string
	Source      string
	ContactName string

	// Enrichment output. EnrichmentError carries the failure text when the
	// website could not be scraped; the candidate still proceeds.
	Description     string
	TextContent     string
	EnrichmentError string
}

// QualificationResult is the scoring verdict for one candidate.
type QualificationResult struct {
	Score            float64
	Quality          entity.LeadQuality
	Reasoning        string
	FitScore         float64
	UrgencyScore     float64
	BudgetLikelihood float64
}

// QualifiedCandidate pairs a candidate with its verdict and resolved contact.
type QualifiedCandidate struct {
	Candidate     Candidate
	Qualification QualificationResult
	PainPoints    []string
	ContactEmail  string
	Qualified     bool
}

// EmailContent is a generated outreach email.
type EmailContent struct {
	Subject string
	Body    string
}

// EmailKind selects the personalization flavor.
type EmailKind string

const (
	EmailKindInitial  EmailKind = "initial"
	EmailKindFollowUp EmailKind = "follow_up"
)
