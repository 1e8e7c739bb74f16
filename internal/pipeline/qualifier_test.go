package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/octobees/sales-automation/api/internal/entity"
)

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt string, out any) error
}

func (g *stubGenerator) GenerateJSON(ctx context.Context, prompt string, out any) error {
	return g.generateFn(ctx, prompt, out)
}

func jsonGenerator(payload string) *stubGenerator {
	return &stubGenerator{generateFn: func(_ context.Context, _ string, out any) error {
		return json.Unmarshal([]byte(payload), out)
	}}
}

func failingGenerator() *stubGenerator {
	return &stubGenerator{generateFn: func(_ context.Context, _ string, _ any) error {
		return errors.New("model unavailable")
	}}
}

func TestScoreClampsOutOfRangeValues(t *testing.T) {
	tests := map[string]struct {
		payload string
		expect  float64
	}{
		"above one":  {payload: `{"score": 1.7}`, expect: 1.0},
		"below zero": {payload: `{"score": -0.2}`, expect: 0.0},
		"in range":   {payload: `{"score": 0.85}`, expect: 0.85},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			q := NewQualifier(jsonGenerator(tt.payload), 0.7)
			verdict := q.Score(t.Context(), Candidate{CompanyName: "Acme"}, Criteria{})
			if verdict.Score != tt.expect {
				t.Fatalf("expected score %v, got %v", tt.expect, verdict.Score)
			}
		})
	}
}

func TestScoreDefaultsToNeutralOnFailure(t *testing.T) {
	q := NewQualifier(failingGenerator(), 0.7)

	verdict := q.Score(t.Context(), Candidate{CompanyName: "Acme"}, Criteria{})
	if verdict.Score != 0.5 {
		t.Fatalf("expected neutral score 0.5, got %v", verdict.Score)
	}
	if verdict.Quality != entity.QualityCold {
		t.Fatalf("expected cold quality for 0.5, got %q", verdict.Quality)
	}
}

func TestScoreDefaultsMissingFields(t *testing.T) {
	q := NewQualifier(jsonGenerator(`{"reasoning": "no numbers here"}`), 0.7)

	verdict := q.Score(t.Context(), Candidate{}, Criteria{})
	if verdict.Score != 0.5 || verdict.FitScore != 0.5 || verdict.UrgencyScore != 0.5 || verdict.BudgetLikelihood != 0.5 {
		t.Fatalf("expected neutral defaults for missing keys, got %+v", verdict)
	}
	if verdict.Reasoning != "no numbers here" {
		t.Fatalf("reasoning lost: %+v", verdict)
	}
}

func TestScoreDerivesQualityTiers(t *testing.T) {
	tests := map[string]struct {
		score   string
		quality entity.LeadQuality
	}{
		"hot at boundary":  {score: "0.8", quality: entity.QualityHot},
		"warm at boundary": {score: "0.6", quality: entity.QualityWarm},
		"cold below":       {score: "0.59", quality: entity.QualityCold},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			q := NewQualifier(jsonGenerator(`{"score": `+tt.score+`}`), 0.7)
			verdict := q.Score(t.Context(), Candidate{}, Criteria{})
			if verdict.Quality != tt.quality {
				t.Fatalf("expected %q, got %q", tt.quality, verdict.Quality)
			}
		})
	}
}

func TestIsQualifiedThresholdIsInclusive(t *testing.T) {
	q := NewQualifier(nil, 0.7)

	if !q.IsQualified(0.7) {
		t.Errorf("score equal to threshold must qualify")
	}
	if q.IsQualified(0.699) {
		t.Errorf("score below threshold must not qualify")
	}
	if !q.IsQualified(1.0) {
		t.Errorf("maximum score must qualify")
	}
}

func TestPainPointsEmptyOnFailure(t *testing.T) {
	q := NewQualifier(failingGenerator(), 0.7)
	if points := q.PainPoints(t.Context(), Candidate{CompanyName: "Acme"}); len(points) != 0 {
		t.Fatalf("expected no pain points on failure, got %v", points)
	}
}

func TestPainPointsTrimsAndCaps(t *testing.T) {
	q := NewQualifier(jsonGenerator(`[" a ", "", "b", "c", "d", "e", "f"]`), 0.7)

	points := q.PainPoints(t.Context(), Candidate{})
	if len(points) != 5 {
		t.Fatalf("expected cap at 5 points, got %v", points)
	}
	if points[0] != "a" {
		t.Fatalf("expected trimmed first point, got %q", points[0])
	}
}
