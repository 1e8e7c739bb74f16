package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrGeneration marks any text-generation failure: transport errors, empty
// responses and unparseable JSON all wrap it.
var ErrGeneration = errors.New("generation failed")

// Generator produces structured JSON from a free-form prompt. The caller must
// never assume schema conformance beyond "parses as JSON".
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, out any) error
}

// Client wraps the Google Gemini API behind the Generator interface.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini client. The API key is required; the model name
// falls back to a current flash model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// GenerateJSON prompts the model for a JSON document and unmarshals it into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, out any) error {
	fullPrompt := prompt + "\n\nRespond ONLY with valid JSON, no markdown or explanations."

	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(fullPrompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.3),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fmt.Errorf("%w: empty response", ErrGeneration)
	}

	if err := json.Unmarshal([]byte(StripFences(text)), out); err != nil {
		return fmt.Errorf("%w: parse response: %v", ErrGeneration, err)
	}
	return nil
}

// Unavailable satisfies Generator when no API key is configured. Every call
// fails with ErrGeneration so callers take their fallback paths.
type Unavailable struct{}

// GenerateJSON always fails.
func (Unavailable) GenerateJSON(context.Context, string, any) error {
	return fmt.Errorf("%w: no API key configured", ErrGeneration)
}

// StripFences removes a surrounding markdown code fence if the model added one
// despite the JSON response MIME type.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
