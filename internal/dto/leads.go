package dto

// LeadListFilter contains query parameters for lead listing endpoints.
type LeadListFilter struct {
	CampaignID string
	Status     string
	Quality    string
	Page       int
	PerPage    int
}

// UpdateLeadRequest carries partial lead updates; nil fields are left untouched.
type UpdateLeadRequest struct {
	ContactName  *string  `json:"contact_name,omitempty"`
	ContactTitle *string  `json:"contact_title,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
	Status       *string  `json:"status,omitempty"`
	QualityScore *float64 `json:"quality_score,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// TrackEventRequest records an engagement event against a lead.
type TrackEventRequest struct {
	Event string `json:"event"`
}
