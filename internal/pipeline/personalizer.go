package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sales-automation/api/internal/gemini"
)

const maxSubjectLen = 50

// PersonalizationInput is everything the writer may reference about a lead.
type PersonalizationInput struct {
	CompanyName string
	Industry    string
	ContactName string
	PainPoints  []string
	Description string
}

// Personalizer writes outreach emails. Like the qualifier it never fails:
// model errors degrade to a deterministic template so every qualified lead
// gets an email.
type Personalizer struct {
	gen gemini.Generator
}

// NewPersonalizer builds an email writer.
func NewPersonalizer(gen gemini.Generator) *Personalizer {
	return &Personalizer{gen: gen}
}

type emailResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GenerateEmail writes the initial outreach email for a lead, guided by the
// campaign template when one is set.
func (p *Personalizer) GenerateEmail(ctx context.Context, input PersonalizationInput, template string) EmailContent {
	prompt := fmt.Sprintf(`Write a personalized cold outreach email.

Company: %s
Industry: %s
Contact: %s
Known pain points: %s
About the company: %s

Campaign template to adapt (may be empty):
%s

Constraints: subject line under %d characters, body 100-150 words, plain
text, no placeholders left unfilled, end with "Best regards".
Return a JSON object with keys: subject, body.`,
		input.CompanyName,
		orAny(input.Industry),
		contactOrDefault(input.ContactName),
		joinOrNone(input.PainPoints),
		truncate(input.Description, 500),
		template,
		maxSubjectLen,
	)

	var resp emailResponse
	if err := p.gen.GenerateJSON(ctx, prompt, &resp); err != nil {
		log.Printf("level=warn msg=\"email generation failed, using fallback template\" company=%q error=%q", input.CompanyName, err)
		return FallbackEmail(input.CompanyName, input.ContactName)
	}
	if strings.TrimSpace(resp.Subject) == "" || strings.TrimSpace(resp.Body) == "" {
		return FallbackEmail(input.CompanyName, input.ContactName)
	}

	return EmailContent{
		Subject: clampSubject(resp.Subject),
		Body:    strings.TrimSpace(resp.Body),
	}
}

// GenerateFollowUp writes follow-up number seq, referencing the previous
// message without repeating it.
func (p *Personalizer) GenerateFollowUp(ctx context.Context, input PersonalizationInput, previousBody string, seq int) EmailContent {
	prompt := fmt.Sprintf(`Write follow-up email number %d for a cold outreach sequence.

Company: %s
Contact: %s

Previous email:
%s

Constraints: subject line under %d characters, body 50-75 words, reference
the earlier email briefly, do not repeat its content, plain text.
Return a JSON object with keys: subject, body.`,
		seq,
		input.CompanyName,
		contactOrDefault(input.ContactName),
		truncate(previousBody, 800),
		maxSubjectLen,
	)

	var resp emailResponse
	if err := p.gen.GenerateJSON(ctx, prompt, &resp); err != nil {
		log.Printf("level=warn msg=\"follow-up generation failed, using fallback template\" company=%q seq=%d error=%q", input.CompanyName, seq, err)
		return FallbackFollowUp(input.CompanyName, input.ContactName, seq)
	}
	if strings.TrimSpace(resp.Subject) == "" || strings.TrimSpace(resp.Body) == "" {
		return FallbackFollowUp(input.CompanyName, input.ContactName, seq)
	}

	return EmailContent{
		Subject: clampSubject(resp.Subject),
		Body:    strings.TrimSpace(resp.Body),
	}
}

// FallbackEmail is the deterministic template used when generation fails.
func FallbackEmail(companyName, contactName string) EmailContent {
	return EmailContent{
		Subject: clampSubject(fmt.Sprintf("Quick question about %s", companyName)),
		Body: fmt.Sprintf("Hi %s,\n\nI noticed %s and wanted to reach out.\n\nWould you be open to a brief conversation?\n\nBest regards",
			contactOrDefault(contactName), companyName),
	}
}

// FallbackFollowUp is the deterministic follow-up used when generation fails.
func FallbackFollowUp(companyName, contactName string, seq int) EmailContent {
	return EmailContent{
		Subject: clampSubject(fmt.Sprintf("Following up: %s", companyName)),
		Body: fmt.Sprintf("Hi %s,\n\nJust following up on my earlier note about %s. Would a short call make sense?\n\nBest regards",
			contactOrDefault(contactName), companyName),
	}
}

func clampSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if len(subject) <= maxSubjectLen {
		return subject
	}
	return strings.TrimSpace(subject[:maxSubjectLen])
}

func contactOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return "there"
	}
	return name
}

func joinOrNone(points []string) string {
	if len(points) == 0 {
		return "none known"
	}
	return strings.Join(points, "; ")
}
