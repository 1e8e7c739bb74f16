package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apolloEndpoint = "https://api.apollo.io/v1/mixed_people/search"

// ApolloStrategy looks up people at the company through the Apollo.io people
// search. Verified addresses win over unverified ones.
type ApolloStrategy struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewApolloStrategy builds the Apollo provider strategy.
func NewApolloStrategy(apiKey string) *ApolloStrategy {
	return &ApolloStrategy{
		apiKey:   apiKey,
		endpoint: apolloEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the strategy in logs.
func (s *ApolloStrategy) Name() string { return "apollo" }

type apolloResponse struct {
	People []struct {
		Email       string `json:"email"`
		EmailStatus string `json:"email_status"`
	} `json:"people"`
}

// Resolve queries Apollo for people at the request domain.
func (s *ApolloStrategy) Resolve(ctx context.Context, req Request) (string, error) {
	if s.apiKey == "" || req.Domain == "" {
		return "", nil
	}

	payload, err := json.Marshal(map[string]any{
		"api_key":              s.apiKey,
		"q_organization_domains": req.Domain,
		"page":                 1,
		"per_page":             5,
	})
	if err != nil {
		return "", fmt.Errorf("encode apollo request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build apollo request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("apollo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("apollo returned status %d", resp.StatusCode)
	}

	var body apolloResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode apollo response: %w", err)
	}

	var fallback string
	for _, p := range body.People {
		if p.Email == "" {
			continue
		}
		if p.EmailStatus == "verified" {
			return p.Email, nil
		}
		if fallback == "" {
			fallback = p.Email
		}
	}
	return fallback, nil
}
