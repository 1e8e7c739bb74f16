package gemini

import "testing"

func TestStripFences(t *testing.T) {
	tests := map[string]struct {
		input  string
		expect string
	}{
		"plain json":    {input: `{"a":1}`, expect: `{"a":1}`},
		"json fence":    {input: "```json\n{\"a\":1}\n```", expect: `{"a":1}`},
		"bare fence":    {input: "```\n[1,2]\n```", expect: `[1,2]`},
		"leading space": {input: "  {\"a\":1}  ", expect: `{"a":1}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(t.Context(), "", "gemini-2.0-flash"); err == nil {
		t.Fatalf("expected error for missing API key")
	}
}
