package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/octobees/sales-automation/api/internal/entity"
	"github.com/octobees/sales-automation/api/internal/repository"
)

func TestEmailStatsAggregatesLeadCounters(t *testing.T) {
	campaignID := uuid.New()
	campaigns := &mockCampaignsRepository{getByID: func(context.Context, uuid.UUID) (*entity.Campaign, error) {
		return &entity.Campaign{ID: campaignID, Name: "Q3 outbound"}, nil
	}}
	leads := &mockLeadsRepository{listByCampaign: func(context.Context, uuid.UUID) ([]entity.Lead, error) {
		return []entity.Lead{
			{EmailsSent: 4, EmailsOpened: 2, EmailsClicked: 1, EmailsReplied: 1},
			{EmailsSent: 6, EmailsOpened: 3, EmailsClicked: 0, EmailsReplied: 1, IsUnsubscribed: true},
		}, nil
	}}
	svc := NewAnalyticsService(campaigns, leads)

	stats, err := svc.EmailStats(t.Context(), campaignID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalLeads != 2 || stats.EmailsSent != 10 || stats.EmailsOpened != 5 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if stats.OpenRate != 0.5 || stats.ClickRate != 0.1 || stats.ReplyRate != 0.2 {
		t.Fatalf("unexpected rates %+v", stats)
	}
	if stats.Unsubscribed != 1 {
		t.Fatalf("unexpected unsubscribe count %+v", stats)
	}
}

func TestEmailStatsZeroSendsHasZeroRates(t *testing.T) {
	campaigns := &mockCampaignsRepository{getByID: func(context.Context, uuid.UUID) (*entity.Campaign, error) {
		return &entity.Campaign{ID: uuid.New(), Name: "fresh"}, nil
	}}
	leads := &mockLeadsRepository{listByCampaign: func(context.Context, uuid.UUID) ([]entity.Lead, error) {
		return []entity.Lead{{}, {}}, nil
	}}
	svc := NewAnalyticsService(campaigns, leads)

	stats, err := svc.EmailStats(t.Context(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.OpenRate != 0 || stats.ClickRate != 0 || stats.ReplyRate != 0 {
		t.Fatalf("expected zero rates, got %+v", stats)
	}
}

func TestEmailStatsPropagatesUnknownCampaign(t *testing.T) {
	campaigns := &mockCampaignsRepository{getByID: func(context.Context, uuid.UUID) (*entity.Campaign, error) {
		return nil, repository.ErrCampaignNotFound
	}}
	svc := NewAnalyticsService(campaigns, &mockLeadsRepository{})

	if _, err := svc.EmailStats(t.Context(), uuid.New()); !errors.Is(err, repository.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}
