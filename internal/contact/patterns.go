package contact

import (
	"context"
	"fmt"
	"strings"
)

// PatternStrategy guesses addresses from the contact's name using the
// conventions most companies follow. No network calls.
type PatternStrategy struct{}

// Name identifies the strategy in logs.
func (PatternStrategy) Name() string { return "patterns" }

// Resolve returns the most likely name-based address, or a miss when the
// contact name is absent or has no splittable parts.
func (PatternStrategy) Resolve(_ context.Context, req Request) (string, error) {
	candidates := GeneratePatterns(req.ContactName, req.Domain)
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0], nil
}

// GeneratePatterns lists name-based address guesses in confidence order:
// first.last, first, f+last, firstlast, first_last.
func GeneratePatterns(contactName, domain string) []string {
	if domain == "" {
		return nil
	}

	parts := strings.Fields(strings.ToLower(strings.TrimSpace(contactName)))
	if len(parts) < 2 {
		return nil
	}
	first, last := sanitizeNamePart(parts[0]), sanitizeNamePart(parts[len(parts)-1])
	if first == "" || last == "" {
		return nil
	}

	return []string{
		fmt.Sprintf("%s.%s@%s", first, last, domain),
		fmt.Sprintf("%s@%s", first, domain),
		fmt.Sprintf("%c%s@%s", first[0], last, domain),
		fmt.Sprintf("%s%s@%s", first, last, domain),
		fmt.Sprintf("%s_%s@%s", first, last, domain),
	}
}

func sanitizeNamePart(part string) string {
	var b strings.Builder
	for _, r := range part {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
