package contact

import (
	"context"
	"fmt"
)

var roleLocalParts = []string{"info", "contact", "hello", "sales"}

// RoleStrategy falls back to common role mailboxes. It is the terminal link
// of the chain and only needs a domain.
type RoleStrategy struct{}

// Name identifies the strategy in logs.
func (RoleStrategy) Name() string { return "roles" }

// Resolve returns the highest-priority role address for the domain.
func (RoleStrategy) Resolve(_ context.Context, req Request) (string, error) {
	if req.Domain == "" {
		return "", nil
	}
	return fmt.Sprintf("%s@%s", roleLocalParts[0], req.Domain), nil
}

// RoleAddresses lists every role mailbox guess for a domain, in priority order.
func RoleAddresses(domain string) []string {
	if domain == "" {
		return nil
	}
	addrs := make([]string, 0, len(roleLocalParts))
	for _, local := range roleLocalParts {
		addrs = append(addrs, fmt.Sprintf("%s@%s", local, domain))
	}
	return addrs
}
