package contact

import (
	"context"
	"errors"
	"testing"
)

type stubStrategy struct {
	name   string
	email  string
	err    error
	called *bool
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Resolve(_ context.Context, _ Request) (string, error) {
	if s.called != nil {
		*s.called = true
	}
	return s.email, s.err
}

func TestResolverStopsAtFirstHit(t *testing.T) {
	var secondCalled, thirdCalled bool
	r := NewResolver(
		&stubStrategy{name: "apollo", email: "jane@acme.com"},
		&stubStrategy{name: "snov", email: "other@acme.com", called: &secondCalled},
		&stubStrategy{name: "hunter", email: "more@acme.com", called: &thirdCalled},
	)

	email, ok := r.Resolve(t.Context(), Request{CompanyName: "Acme", Domain: "acme.com"})
	if !ok || email != "jane@acme.com" {
		t.Fatalf("expected first strategy result, got %q ok=%v", email, ok)
	}
	if secondCalled || thirdCalled {
		t.Fatalf("later strategies must not run after a hit (snov=%v hunter=%v)", secondCalled, thirdCalled)
	}
}

func TestResolverTreatsStrategyErrorAsMiss(t *testing.T) {
	r := NewResolver(
		&stubStrategy{name: "apollo", err: errors.New("rate limited")},
		&stubStrategy{name: "patterns", email: "john.doe@acme.com"},
	)

	email, ok := r.Resolve(t.Context(), Request{Domain: "acme.com"})
	if !ok || email != "john.doe@acme.com" {
		t.Fatalf("expected chain to continue past failure, got %q ok=%v", email, ok)
	}
}

func TestResolverRejectsMalformedStrategyOutput(t *testing.T) {
	r := NewResolver(
		&stubStrategy{name: "apollo", email: "not-an-email"},
		&stubStrategy{name: "roles", email: "info@acme.com"},
	)

	email, ok := r.Resolve(t.Context(), Request{Domain: "acme.com"})
	if !ok || email != "info@acme.com" {
		t.Fatalf("expected malformed address to be skipped, got %q ok=%v", email, ok)
	}
}

func TestResolverMissesWithoutDomain(t *testing.T) {
	var called bool
	r := NewResolver(&stubStrategy{name: "roles", email: "info@acme.com", called: &called})

	if email, ok := r.Resolve(t.Context(), Request{CompanyName: "Acme"}); ok {
		t.Fatalf("expected miss without domain, got %q", email)
	}
	if called {
		t.Fatalf("strategies must not run without a domain")
	}
}

func TestDomainFromURL(t *testing.T) {
	tests := map[string]struct {
		input  string
		expect string
	}{
		"https with www":  {input: "https://www.acme.com", expect: "acme.com"},
		"http plain":      {input: "http://acme.io", expect: "acme.io"},
		"path discarded":  {input: "https://acme.com/about/team", expect: "acme.com"},
		"query discarded": {input: "https://acme.com?ref=x", expect: "acme.com"},
		"bare host":       {input: "Acme.com", expect: "acme.com"},
		"empty":           {input: "", expect: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := DomainFromURL(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestGeneratePatternsOrder(t *testing.T) {
	got := GeneratePatterns("John Doe", "acme.com")
	want := []string{
		"john.doe@acme.com",
		"john@acme.com",
		"jdoe@acme.com",
		"johndoe@acme.com",
		"john_doe@acme.com",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d patterns, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pattern %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestGeneratePatternsRequiresFullName(t *testing.T) {
	if got := GeneratePatterns("Cher", "acme.com"); got != nil {
		t.Fatalf("expected nil for single-word name, got %v", got)
	}
	if got := GeneratePatterns("", "acme.com"); got != nil {
		t.Fatalf("expected nil for empty name, got %v", got)
	}
	if got := GeneratePatterns("John Doe", ""); got != nil {
		t.Fatalf("expected nil for empty domain, got %v", got)
	}
}

func TestRoleAddresses(t *testing.T) {
	got := RoleAddresses("acme.com")
	want := []string{"info@acme.com", "contact@acme.com", "hello@acme.com", "sales@acme.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %d addresses, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("address %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := map[string]struct {
		email string
		valid bool
	}{
		"simple":        {email: "jane@acme.com", valid: true},
		"subdomain":     {email: "jane@mail.acme.com", valid: true},
		"no at":         {email: "janeacme.com", valid: false},
		"no tld":        {email: "jane@acme", valid: false},
		"display name":  {email: "Jane <jane@acme.com>", valid: false},
		"empty":         {email: "", valid: false},
		"double at":     {email: "jane@@acme.com", valid: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ValidEmail(tt.email); got != tt.valid {
				t.Fatalf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

type stubFetcher struct {
	body []byte
	err  error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.body, f.err
}

func TestWebsiteStrategyPrefersDomainMatch(t *testing.T) {
	s := NewWebsiteStrategy(&stubFetcher{body: []byte("reach partner@agency.io or hello@acme.com")})

	email, err := s.Resolve(t.Context(), Request{Website: "https://acme.com", Domain: "acme.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "hello@acme.com" {
		t.Fatalf("expected domain-matching address, got %q", email)
	}
}

func TestWebsiteStrategyFallsBackToFirstEmail(t *testing.T) {
	s := NewWebsiteStrategy(&stubFetcher{body: []byte("reach partner@agency.io for details")})

	email, err := s.Resolve(t.Context(), Request{Website: "https://acme.com", Domain: "acme.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "partner@agency.io" {
		t.Fatalf("expected first address, got %q", email)
	}
}
