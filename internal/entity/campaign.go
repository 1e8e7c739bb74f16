package entity

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus enumerates the campaign lifecycle.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"
)

// TargetCriteria defines who a campaign goes after. Empty fields mean "any".
type TargetCriteria struct {
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
}

// Campaign represents an outbound campaign with its targeting, templates and
// aggregate statistics.
type Campaign struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`

	TargetCriteria TargetCriteria `json:"target_criteria"`

	EmailTemplate   *string `json:"email_template,omitempty"`
	SubjectTemplate *string `json:"subject_template,omitempty"`

	FollowUpEnabled bool  `json:"follow_up_enabled"`
	FollowUpDelays  []int `json:"follow_up_delays"`
	MaxFollowUps    int   `json:"max_follow_ups"`

	DailyLimit *int `json:"daily_limit,omitempty"`
	TotalLimit *int `json:"total_limit,omitempty"`

	Status CampaignStatus `json:"status"`

	TotalLeads     int `json:"total_leads"`
	QualifiedLeads int `json:"qualified_leads"`
	EmailsSent     int `json:"emails_sent"`
	EmailsOpened   int `json:"emails_opened"`
	EmailsReplied  int `json:"emails_replied"`
	MeetingsBooked int `json:"meetings_booked"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpenRate returns the fraction of sent emails that were opened.
func (c *Campaign) OpenRate() float64 {
	if c.EmailsSent == 0 {
		return 0
	}
	return float64(c.EmailsOpened) / float64(c.EmailsSent)
}

// ReplyRate returns the fraction of sent emails that received a reply.
func (c *Campaign) ReplyRate() float64 {
	if c.EmailsSent == 0 {
		return 0
	}
	return float64(c.EmailsReplied) / float64(c.EmailsSent)
}

// ConversionRate returns meetings booked per qualified lead.
func (c *Campaign) ConversionRate() float64 {
	if c.QualifiedLeads == 0 {
		return 0
	}
	return float64(c.MeetingsBooked) / float64(c.QualifiedLeads)
}
