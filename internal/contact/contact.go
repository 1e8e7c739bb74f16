package contact

import (
	"context"
	"log"
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
)

// Request carries everything a strategy may use to find an address.
type Request struct {
	CompanyName string
	ContactName string
	Website     string
	Domain      string
}

// Strategy attempts one way of finding an email address. A miss is
// ("", nil); errors are provider failures the resolver treats as misses.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, req Request) (string, error)
}

// Resolver walks an ordered strategy chain and stops at the first address
// that passes format validation.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds a resolver over the given chain. Order matters.
func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve derives the company domain and runs the chain. Without a domain no
// strategy can produce a trustworthy address, so the result is a miss.
func (r *Resolver) Resolve(ctx context.Context, req Request) (string, bool) {
	if req.Domain == "" {
		req.Domain = DomainFromURL(req.Website)
	}
	if req.Domain == "" {
		return "", false
	}

	for _, s := range r.strategies {
		email, err := s.Resolve(ctx, req)
		if err != nil {
			log.Printf("level=warn msg=\"contact strategy failed\" strategy=%s company=%q error=%q", s.Name(), req.CompanyName, err)
			continue
		}
		if email == "" {
			continue
		}
		if !ValidEmail(email) {
			log.Printf("level=warn msg=\"strategy returned malformed email\" strategy=%s email=%q", s.Name(), email)
			continue
		}
		return strings.ToLower(email), true
	}
	return "", false
}

// DomainFromURL reduces a website URL to its bare registrable host:
// scheme and www prefix stripped, path discarded.
func DomainFromURL(website string) string {
	d := strings.TrimSpace(strings.ToLower(website))
	for _, prefix := range []string{"https://", "http://"} {
		d = strings.TrimPrefix(d, prefix)
	}
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	return d
}

// ValidEmail reports whether the address is well formed, including an IDNA
// check on the domain part.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	if _, err := idna.Lookup.ToASCII(domain); err != nil {
		return false
	}
	return true
}
