package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/repository"
)

// AnalyticsService aggregates engagement counters across a campaign's leads.
type AnalyticsService struct {
	campaigns repository.CampaignsRepository
	leads     repository.LeadsRepository
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(campaigns repository.CampaignsRepository, leads repository.LeadsRepository) *AnalyticsService {
	return &AnalyticsService{campaigns: campaigns, leads: leads}
}

// EmailStats sums per-lead counters into campaign-level engagement rates.
// Rates are fractions of emails sent; a campaign with no sends reports zero.
func (s *AnalyticsService) EmailStats(ctx context.Context, campaignID uuid.UUID) (*dto.CampaignEmailStats, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	leads, err := s.leads.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	stats := &dto.CampaignEmailStats{
		CampaignID:     campaign.ID.String(),
		CampaignName:   campaign.Name,
		TotalLeads:     len(leads),
		MeetingsBooked: campaign.MeetingsBooked,
		ConversionRate: campaign.ConversionRate(),
	}
	for _, lead := range leads {
		stats.EmailsSent += lead.EmailsSent
		stats.EmailsOpened += lead.EmailsOpened
		stats.EmailsClicked += lead.EmailsClicked
		stats.EmailsReplied += lead.EmailsReplied
		if lead.IsUnsubscribed {
			stats.Unsubscribed++
		}
	}
	if stats.EmailsSent > 0 {
		sent := float64(stats.EmailsSent)
		stats.OpenRate = float64(stats.EmailsOpened) / sent
		stats.ClickRate = float64(stats.EmailsClicked) / sent
		stats.ReplyRate = float64(stats.EmailsReplied) / sent
	}
	return stats, nil
}
