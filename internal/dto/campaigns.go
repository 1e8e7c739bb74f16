package dto

import "github.com/octobees/sales-automation/api/internal/entity"

// CreateCampaignRequest is the payload for POST /campaigns.
type CreateCampaignRequest struct {
	Name            string                `json:"name"`
	Description     *string               `json:"description,omitempty"`
	TargetCriteria  entity.TargetCriteria `json:"target_criteria"`
	EmailTemplate   *string               `json:"email_template,omitempty"`
	SubjectTemplate *string               `json:"subject_template,omitempty"`
	FollowUpEnabled *bool                 `json:"follow_up_enabled,omitempty"`
	FollowUpDelays  []int                 `json:"follow_up_delays,omitempty"`
	MaxFollowUps    *int                  `json:"max_follow_ups,omitempty"`
	DailyLimit      *int                  `json:"daily_limit,omitempty"`
	TotalLimit      *int                  `json:"total_limit,omitempty"`
}

// UpdateCampaignRequest carries partial campaign updates; nil fields are left untouched.
type UpdateCampaignRequest struct {
	Name            *string                `json:"name,omitempty"`
	Description     *string                `json:"description,omitempty"`
	TargetCriteria  *entity.TargetCriteria `json:"target_criteria,omitempty"`
	EmailTemplate   *string                `json:"email_template,omitempty"`
	SubjectTemplate *string                `json:"subject_template,omitempty"`
	Status          *string                `json:"status,omitempty"`
	FollowUpEnabled *bool                  `json:"follow_up_enabled,omitempty"`
	MaxFollowUps    *int                   `json:"max_follow_ups,omitempty"`
}

// CampaignListFilter contains query parameters for campaign listing.
type CampaignListFilter struct {
	Status  string
	Page    int
	PerPage int
}

// RunResult summarises a single campaign execution. All counts are exact
// completions of the respective stage, not intentions.
type RunResult struct {
	CampaignID   string `json:"campaign_id"`
	LeadsFound   int    `json:"leads_found"`
	LeadsCreated int    `json:"leads_created"`
	EmailsSent   int    `json:"emails_sent"`
	EmailsFailed int    `json:"emails_failed"`
	Message      string `json:"message,omitempty"`
}
