package dto

// CampaignEmailStats aggregates engagement counters across a campaign's leads.
type CampaignEmailStats struct {
	CampaignID    string  `json:"campaign_id"`
	CampaignName  string  `json:"campaign_name"`
	TotalLeads    int     `json:"total_leads"`
	EmailsSent    int     `json:"emails_sent"`
	EmailsOpened  int     `json:"emails_opened"`
	EmailsClicked int     `json:"emails_clicked"`
	EmailsReplied int     `json:"emails_replied"`
	OpenRate      float64 `json:"open_rate"`
	ClickRate     float64 `json:"click_rate"`
	ReplyRate     float64 `json:"reply_rate"`
	Unsubscribed  int     `json:"unsubscribed"`

	MeetingsBooked int     `json:"meetings_booked"`
	ConversionRate float64 `json:"conversion_rate"`
}
