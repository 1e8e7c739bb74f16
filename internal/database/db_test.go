package database

import (
	"context"
	"testing"
	"time"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestConnectRejectsInvalidDSN(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := Connect(ctx, "://not-a-dsn"); err == nil {
		t.Fatalf("expected error for malformed DSN")
	}
}
