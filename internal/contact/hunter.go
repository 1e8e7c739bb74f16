package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const hunterEndpoint = "https://api.hunter.io/v2/domain-search"

// HunterStrategy runs a Hunter.io domain search. Generic mailboxes are
// preferred; personal addresses serve as fallback.
type HunterStrategy struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewHunterStrategy builds the Hunter provider strategy.
func NewHunterStrategy(apiKey string) *HunterStrategy {
	return &HunterStrategy{
		apiKey:   apiKey,
		endpoint: hunterEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the strategy in logs.
func (s *HunterStrategy) Name() string { return "hunter" }

type hunterResponse struct {
	Data struct {
		Emails []struct {
			Value string `json:"value"`
			Type  string `json:"type"`
		} `json:"emails"`
	} `json:"data"`
}

// Resolve queries Hunter for domain emails.
func (s *HunterStrategy) Resolve(ctx context.Context, req Request) (string, error) {
	if s.apiKey == "" || req.Domain == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("domain", req.Domain)
	params.Set("api_key", s.apiKey)
	params.Set("limit", "10")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build hunter request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("hunter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hunter returned status %d", resp.StatusCode)
	}

	var body hunterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode hunter response: %w", err)
	}

	var fallback string
	for _, e := range body.Data.Emails {
		if e.Value == "" {
			continue
		}
		if e.Type == "generic" {
			return e.Value, nil
		}
		if fallback == "" {
			fallback = e.Value
		}
	}
	return fallback, nil
}
