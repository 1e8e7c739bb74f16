package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sales-automation/api/internal/entity"
	"github.com/octobees/sales-automation/api/internal/gemini"
)

const neutralScore = 0.5

// Qualifier scores candidates against campaign criteria. Scoring never
// fails: any model error degrades to a neutral verdict so a flaky provider
// cannot sink a run.
type Qualifier struct {
	gen       gemini.Generator
	threshold float64
}

// NewQualifier builds a qualifier with the campaign qualification threshold.
func NewQualifier(gen gemini.Generator, threshold float64) *Qualifier {
	return &Qualifier{gen: gen, threshold: threshold}
}

type scoreResponse struct {
	Score            *float64 `json:"score"`
	Reasoning        string   `json:"reasoning"`
	FitScore         *float64 `json:"fit_score"`
	UrgencyScore     *float64 `json:"urgency_score"`
	BudgetLikelihood *float64 `json:"budget_likelihood"`
}

// Score produces the qualification verdict for one candidate. The returned
// score is always within [0, 1] and quality is derived from it.
func (q *Qualifier) Score(ctx context.Context, cand Candidate, criteria Criteria) QualificationResult {
	prompt := fmt.Sprintf(`Score how well this company matches an outbound campaign's target profile.

Company: %s
Website: %s
Description: %s
Context: %s

Target profile:
- Industry: %s
- Location: %s
- Company size: %s

Return a JSON object with keys: score (0.0-1.0 overall match), reasoning
(one sentence), fit_score, urgency_score, budget_likelihood (each 0.0-1.0).`,
		cand.CompanyName,
		cand.Website,
		cand.Description,
		truncate(cand.TextContent, 800),
		criteria.industryOrAny(),
		criteria.locationOrAny(),
		criteria.companySizeOrAny(),
	)

	var resp scoreResponse
	if err := q.gen.GenerateJSON(ctx, prompt, &resp); err != nil {
		log.Printf("level=warn msg=\"qualification scoring failed, using neutral verdict\" company=%q error=%q", cand.CompanyName, err)
		return neutralVerdict()
	}

	score := clamp01(valueOr(resp.Score, neutralScore))
	return QualificationResult{
		Score:            score,
		Quality:          entity.QualityForScore(score),
		Reasoning:        resp.Reasoning,
		FitScore:         clamp01(valueOr(resp.FitScore, neutralScore)),
		UrgencyScore:     clamp01(valueOr(resp.UrgencyScore, neutralScore)),
		BudgetLikelihood: clamp01(valueOr(resp.BudgetLikelihood, neutralScore)),
	}
}

// PainPoints asks the model for three to five likely pain points. Failures
// yield an empty list.
func (q *Qualifier) PainPoints(ctx context.Context, cand Candidate) []string {
	prompt := fmt.Sprintf(`List 3 to 5 likely business pain points for this company.

Company: %s
Description: %s
Context: %s

Return a JSON array of short pain point strings.`,
		cand.CompanyName,
		cand.Description,
		truncate(cand.TextContent, 800),
	)

	var points []string
	if err := q.gen.GenerateJSON(ctx, prompt, &points); err != nil {
		log.Printf("level=warn msg=\"pain point extraction failed\" company=%q error=%q", cand.CompanyName, err)
		return nil
	}

	cleaned := points[:0]
	for _, p := range points {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) > 5 {
		cleaned = cleaned[:5]
	}
	return cleaned
}

// IsQualified applies the campaign threshold to a score.
func (q *Qualifier) IsQualified(score float64) bool {
	return score >= q.threshold
}

func neutralVerdict() QualificationResult {
	return QualificationResult{
		Score:            neutralScore,
		Quality:          entity.QualityForScore(neutralScore),
		FitScore:         neutralScore,
		UrgencyScore:     neutralScore,
		BudgetLikelihood: neutralScore,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
