package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/sales-automation/api/internal/entity"
)

// EmailsRepository records dispatch attempts, one row per attempt.
type EmailsRepository interface {
	Create(ctx context.Context, email *entity.Email) error
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Email, error)
}

// PGXEmailsRepository implements EmailsRepository using pgx.
type PGXEmailsRepository struct {
	pool pgxPool
}

// NewPGXEmailsRepository wires a pgx backed repository.
func NewPGXEmailsRepository(pool *pgxpool.Pool) *PGXEmailsRepository {
	return &PGXEmailsRepository{pool: pool}
}

// Create inserts a dispatch attempt row.
func (r *PGXEmailsRepository) Create(ctx context.Context, email *entity.Email) error {
	if email == nil {
		return fmt.Errorf("email payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO emails (lead_id, subject, body_text, body_html, to_address, status, error_msg, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `,
		email.LeadID,
		email.Subject,
		email.BodyText,
		email.BodyHTML,
		email.ToAddress,
		string(email.Status),
		email.ErrorMsg,
		email.SentAt,
	)
	if err := row.Scan(&email.ID, &email.CreatedAt); err != nil {
		return fmt.Errorf("insert email: %w", err)
	}
	return nil
}

// ListByLead returns dispatch attempts for a lead, newest first.
func (r *PGXEmailsRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Email, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, lead_id, subject, body_text, body_html, to_address, status, error_msg, sent_at, created_at
        FROM emails WHERE lead_id = $1 ORDER BY created_at DESC
    `, leadID)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	var emails []entity.Email
	for rows.Next() {
		var (
			e        entity.Email
			bodyHTML sql.NullString
			errMsg   sql.NullString
			status   string
			sentAt   sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.LeadID, &e.Subject, &e.BodyText, &bodyHTML, &e.ToAddress, &status, &errMsg, &sentAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		e.Status = entity.EmailStatus(status)
		e.BodyHTML = nullStringToPtr(bodyHTML)
		e.ErrorMsg = nullStringToPtr(errMsg)
		if sentAt.Valid {
			ts := sentAt.Time
			e.SentAt = &ts
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emails: %w", err)
	}
	return emails, nil
}
