package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus describes the outcome of a dispatch attempt.
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// Email records a single dispatch attempt for a lead.
type Email struct {
	ID        uuid.UUID   `json:"id"`
	LeadID    uuid.UUID   `json:"lead_id"`
	Subject   string      `json:"subject"`
	BodyText  string      `json:"body_text"`
	BodyHTML  *string     `json:"body_html,omitempty"`
	ToAddress string      `json:"to_address"`
	Status    EmailStatus `json:"status"`
	ErrorMsg  *string     `json:"error_msg,omitempty"`
	SentAt    *time.Time  `json:"sent_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
