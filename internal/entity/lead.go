package entity

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// LeadStatus enumerates lead progression.
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusResearching   LeadStatus = "researching"
	LeadStatusQualified     LeadStatus = "qualified"
	LeadStatusDisqualified  LeadStatus = "disqualified"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusResponded     LeadStatus = "responded"
	LeadStatusMeetingBooked LeadStatus = "meeting_booked"
	LeadStatusWon           LeadStatus = "won"
	LeadStatusLost          LeadStatus = "lost"
)

// LeadQuality is the three-tier label derived from the qualification score.
type LeadQuality string

const (
	QualityHot  LeadQuality = "hot"
	QualityWarm LeadQuality = "warm"
	QualityCold LeadQuality = "cold"
)

// Lead is the durable record of a company/contact targeted by a campaign.
type Lead struct {
	ID         uuid.UUID  `json:"id"`
	CampaignID *uuid.UUID `json:"campaign_id,omitempty"`

	CompanyName    string  `json:"company_name"`
	CompanyWebsite *string `json:"company_website,omitempty"`
	CompanyDomain  *string `json:"company_domain,omitempty"`
	Industry       *string `json:"industry,omitempty"`
	CompanySize    *string `json:"company_size,omitempty"`
	Location       *string `json:"location,omitempty"`
	Description    *string `json:"description,omitempty"`

	ContactName  *string `json:"contact_name,omitempty"`
	ContactTitle *string `json:"contact_title,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`

	QualityScore *float64     `json:"quality_score,omitempty"`
	Quality      *LeadQuality `json:"quality,omitempty"`

	Status LeadStatus `json:"status"`

	EmailsSent    int `json:"emails_sent"`
	EmailsOpened  int `json:"emails_opened"`
	EmailsClicked int `json:"emails_clicked"`
	EmailsReplied int `json:"emails_replied"`

	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	LastRespondedAt *time.Time `json:"last_responded_at,omitempty"`
	NextFollowUpAt  *time.Time `json:"next_follow_up_at,omitempty"`

	IsActive       bool `json:"is_active"`
	IsUnsubscribed bool `json:"is_unsubscribed"`
	IsBounced      bool `json:"is_bounced"`

	// UnsubscribeToken is generated at most once and never rotated afterwards.
	UnsubscribeToken *string `json:"unsubscribe_token,omitempty"`

	Source *string `json:"source,omitempty"`
	Notes  *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EngagementScore combines open, click and reply rates into a single metric.
func (l *Lead) EngagementScore() float64 {
	if l.EmailsSent == 0 {
		return 0
	}
	sent := float64(l.EmailsSent)
	openRate := float64(l.EmailsOpened) / sent
	clickRate := float64(l.EmailsClicked) / sent
	replyRate := float64(l.EmailsReplied) / sent
	return openRate*0.3 + clickRate*0.3 + replyRate*0.4
}

// EnsureUnsubscribeToken assigns a URL-safe random token if none exists yet
// and returns the token in effect.
func (l *Lead) EnsureUnsubscribeToken() string {
	if l.UnsubscribeToken != nil && *l.UnsubscribeToken != "" {
		return *l.UnsubscribeToken
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a UUID pair.
		token := uuid.NewString() + uuid.NewString()
		l.UnsubscribeToken = &token
		return token
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	l.UnsubscribeToken = &token
	return token
}

// QualityForScore maps a clamped qualification score onto the fixed tiers.
func QualityForScore(score float64) LeadQuality {
	switch {
	case score >= 0.8:
		return QualityHot
	case score >= 0.6:
		return QualityWarm
	default:
		return QualityCold
	}
}
