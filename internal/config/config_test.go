package config

import (
	"testing"
	"time"
)

func TestParseRateLimit(t *testing.T) {
	tests := map[string]struct {
		input     string
		expect    RateLimitConfig
		expectErr bool
	}{
		"per minute":       {input: "5/min", expect: RateLimitConfig{Requests: 5, Interval: time.Minute}},
		"per second":       {input: "10/s", expect: RateLimitConfig{Requests: 10, Interval: time.Second}},
		"per hour":         {input: "100/hour", expect: RateLimitConfig{Requests: 100, Interval: time.Hour}},
		"missing interval": {input: "5", expectErr: true},
		"bad count":        {input: "x/min", expectErr: true},
		"zero count":       {input: "0/min", expectErr: true},
		"unknown unit":     {input: "5/day", expectErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseRateLimit(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QualificationThreshold != 0.7 {
		t.Fatalf("expected default threshold 0.7, got %v", cfg.QualificationThreshold)
	}
	if cfg.MaxResearchResults != 50 {
		t.Fatalf("expected default max research results 50, got %d", cfg.MaxResearchResults)
	}
	if cfg.UseRealSearch || cfg.UseRealEmails {
		t.Fatalf("expected provider toggles off by default")
	}
	if cfg.ScrapingDelay != time.Second {
		t.Fatalf("expected default scraping delay 1s, got %s", cfg.ScrapingDelay)
	}
	if cfg.RateLimitRun.Requests != 5 || cfg.RateLimitRun.Interval != time.Minute {
		t.Fatalf("unexpected default run rate limit: %+v", cfg.RateLimitRun)
	}
}

func TestLoadRejectsOutOfRangeThreshold(t *testing.T) {
	t.Setenv("QUALIFICATION_THRESHOLD", "1.5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for threshold above 1")
	}
}

func TestLoadCustomThreshold(t *testing.T) {
	t.Setenv("QUALIFICATION_THRESHOLD", "0.85")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QualificationThreshold != 0.85 {
		t.Fatalf("expected threshold 0.85, got %v", cfg.QualificationThreshold)
	}
}
