package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const snovEndpoint = "https://api.snov.io/v1/get-domain-emails-with-info"

// SnovStrategy searches Snov.io for addresses published on the company
// domain. Company-wide mailboxes are preferred over personal ones.
type SnovStrategy struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSnovStrategy builds the Snov provider strategy.
func NewSnovStrategy(apiKey string) *SnovStrategy {
	return &SnovStrategy{
		apiKey:   apiKey,
		endpoint: snovEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the strategy in logs.
func (s *SnovStrategy) Name() string { return "snov" }

type snovResponse struct {
	Emails []struct {
		Email string `json:"email"`
		Type  string `json:"type"`
	} `json:"emails"`
}

// Resolve queries Snov for domain emails.
func (s *SnovStrategy) Resolve(ctx context.Context, req Request) (string, error) {
	if s.apiKey == "" || req.Domain == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("access_token", s.apiKey)
	params.Set("domain", req.Domain)
	params.Set("type", "all")
	params.Set("limit", "10")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build snov request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("snov request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("snov returned status %d", resp.StatusCode)
	}

	var body snovResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode snov response: %w", err)
	}

	var fallback string
	for _, e := range body.Emails {
		if e.Email == "" {
			continue
		}
		if e.Type == "generic" || e.Type == "company" {
			return e.Email, nil
		}
		if fallback == "" {
			fallback = e.Email
		}
	}
	return fallback, nil
}
