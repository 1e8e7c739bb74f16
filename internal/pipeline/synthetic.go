package pipeline

import (
	"fmt"
	"strings"

	"github.com/octobees/sales-automation/api/internal/entity"
)

// syntheticScores is the fixed score slate for offline runs. The spread
// straddles common thresholds so runs exercise both sides of the cutoff.
var syntheticScores = []float64{0.9, 0.75, 0.55, 0.82, 0.3}

var syntheticCompanies = []struct {
	name    string
	contact string
}{
	{"Northwind Analytics", "Maria Chen"},
	{"Bluepeak Software", "Tom Eriksen"},
	{"Halcyon Freight", "Priya Nair"},
	{"Veldt Studios", "Jonas Brandt"},
	{"Copperline Retail", "Aisha Okoye"},
}

// SyntheticCandidates fabricates a deterministic slate of pre-scored
// candidates so campaign runs work end to end without search or model keys.
func SyntheticCandidates(criteria Criteria) []QualifiedCandidate {
	industry := criteria.industryOrAny()

	out := make([]QualifiedCandidate, 0, len(syntheticCompanies))
	for i, c := range syntheticCompanies {
		domain := strings.ToLower(strings.ReplaceAll(c.name, " ", "")) + ".example.com"
		score := syntheticScores[i]
		out = append(out, QualifiedCandidate{
			Candidate: Candidate{
				CompanyName: c.name,
				Website:     "https://" + domain,
				Domain:      domain,
				ContactName: c.contact,
				Snippet:     fmt.Sprintf("%s operates in the %s space.", c.name, industry),
				Source:      "synthetic",
			},
			Qualification: QualificationResult{
				Score:            score,
				Quality:          entity.QualityForScore(score),
				Reasoning:        "synthetic candidate",
				FitScore:         score,
				UrgencyScore:     score,
				BudgetLikelihood: score,
			},
			PainPoints:   []string{"manual outreach", "slow lead research"},
			ContactEmail: "contact@" + domain,
		})
	}
	return out
}
