package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
)

func TestCampaignsCreateRejectsNilPayload(t *testing.T) {
	repo := &PGXCampaignsRepository{pool: &stubPool{}}
	if err := repo.Create(t.Context(), nil); err == nil {
		t.Fatalf("expected error for nil campaign")
	}
}

func TestCampaignsCreateAppliesDefaults(t *testing.T) {
	var gotArgs []any
	pool := &stubPool{queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		gotArgs = args
		return stubRow{scanFn: func(dest ...any) error {
			*(dest[0].(*uuid.UUID)) = uuid.New()
			*(dest[1].(*string)) = string(entity.CampaignStatusDraft)
			*(dest[2].(*time.Time)) = time.Now()
			*(dest[3].(*time.Time)) = time.Now()
			return nil
		}}
	}}
	repo := &PGXCampaignsRepository{pool: pool}

	campaign := &entity.Campaign{Name: "Q3 outbound"}
	if err := repo.Create(t.Context(), campaign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// follow_up_delays default, max_follow_ups default, status default
	if gotArgs[6] != `[3,7,14]` {
		t.Errorf("expected default delays, got %v", gotArgs[6])
	}
	if gotArgs[7] != 3 {
		t.Errorf("expected default max follow-ups 3, got %v", gotArgs[7])
	}
	if gotArgs[10] != string(entity.CampaignStatusDraft) {
		t.Errorf("expected draft status, got %v", gotArgs[10])
	}
	if campaign.MaxFollowUps != 3 {
		t.Errorf("defaults not reflected back: %+v", campaign)
	}
}

func TestCampaignsGetByIDNotFound(t *testing.T) {
	pool := &stubPool{queryRowFn: func(context.Context, string, ...any) pgx.Row {
		return stubRow{scanFn: func(...any) error { return pgx.ErrNoRows }}
	}}
	repo := &PGXCampaignsRepository{pool: pool}

	if _, err := repo.GetByID(t.Context(), uuid.New()); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestCampaignsListFiltersByStatus(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	pool := &stubPool{queryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		gotSQL = sql
		gotArgs = args
		return emptyRows{}, nil
	}}
	repo := &PGXCampaignsRepository{pool: pool}

	if _, err := repo.List(t.Context(), dto.CampaignListFilter{Status: "active", Page: 2, PerPage: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotSQL, "WHERE status = $1") {
		t.Errorf("missing status clause in %q", gotSQL)
	}
	if gotArgs[0] != "active" || gotArgs[1] != 5 || gotArgs[2] != 5 {
		t.Errorf("unexpected args %v", gotArgs)
	}
}

func TestCampaignsUpdateNotFound(t *testing.T) {
	pool := &stubPool{execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("UPDATE 0"), nil
	}}
	repo := &PGXCampaignsRepository{pool: pool}

	err := repo.Update(t.Context(), &entity.Campaign{ID: uuid.New(), Name: "x", Status: entity.CampaignStatusDraft})
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestCampaignsUpdateStatsOverwritesCounters(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	pool := &stubPool{execFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		gotSQL = sql
		gotArgs = args
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}}
	repo := &PGXCampaignsRepository{pool: pool}

	stats := CampaignStats{TotalLeads: 7, QualifiedLeads: 7, EmailsSent: 5, Status: entity.CampaignStatusActive}
	if err := repo.UpdateStats(t.Context(), uuid.New(), stats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Counters are assigned, never accumulated.
	if strings.Contains(gotSQL, "emails_sent = emails_sent") {
		t.Errorf("stats update must overwrite, got %q", gotSQL)
	}
	if gotArgs[0] != 7 || gotArgs[1] != 7 || gotArgs[2] != 5 || gotArgs[3] != "active" {
		t.Errorf("unexpected args %v", gotArgs)
	}
}

func TestCampaignsDeleteNotFound(t *testing.T) {
	pool := &stubPool{execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}}
	repo := &PGXCampaignsRepository{pool: pool}

	if err := repo.Delete(t.Context(), uuid.New()); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestDelaysOrDefault(t *testing.T) {
	if got := delaysOrDefault(nil); len(got) != 3 || got[0] != 3 || got[1] != 7 || got[2] != 14 {
		t.Fatalf("unexpected default delays %v", got)
	}
	if got := delaysOrDefault([]int{1, 2}); len(got) != 2 {
		t.Fatalf("explicit delays must pass through, got %v", got)
	}
}
