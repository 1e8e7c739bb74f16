package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
)

// ErrLeadNotFound is returned when no lead matches the lookup criteria.
var ErrLeadNotFound = errors.New("lead not found")

// EngagementEvent names a trackable email interaction.
type EngagementEvent string

const (
	EventOpened  EngagementEvent = "opened"
	EventClicked EngagementEvent = "clicked"
	EventReplied EngagementEvent = "replied"
)

// LeadsRepository describes persistence operations for leads.
type LeadsRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	GetByUnsubscribeToken(ctx context.Context, token string) (*entity.Lead, error)
	List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	MarkUnsubscribed(ctx context.Context, id uuid.UUID) error
	RecordSend(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementEngagement(ctx context.Context, id uuid.UUID, event EngagementEvent) error
}

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

const leadColumns = `
	id, campaign_id, company_name, company_website, company_domain, industry,
	company_size, location, description, contact_name, contact_title,
	contact_email, contact_phone, quality_score, quality, status, emails_sent,
	emails_opened, emails_clicked, emails_replied, last_contacted_at,
	last_responded_at, next_follow_up_at, is_active, is_unsubscribed,
	is_bounced, unsubscribe_token, source, notes, created_at, updated_at`

// Create inserts a lead row. Discovery is allowed to create duplicates across
// runs; no conflict target is declared on purpose.
func (r *PGXLeadsRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}

	status := lead.Status
	if status == "" {
		status = entity.LeadStatusNew
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO leads (
            campaign_id, company_name, company_website, company_domain, industry,
            company_size, location, description, contact_name, contact_title,
            contact_email, contact_phone, quality_score, quality, status,
            is_active, unsubscribe_token, source, notes
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, TRUE, $16, $17, $18)
        RETURNING id, status, created_at, updated_at
    `,
		lead.CampaignID,
		lead.CompanyName,
		lead.CompanyWebsite,
		lead.CompanyDomain,
		lead.Industry,
		lead.CompanySize,
		lead.Location,
		lead.Description,
		lead.ContactName,
		lead.ContactTitle,
		lead.ContactEmail,
		lead.ContactPhone,
		lead.QualityScore,
		qualityOrNil(lead.Quality),
		string(status),
		lead.UnsubscribeToken,
		lead.Source,
		lead.Notes,
	)

	var statusVal string
	if err := row.Scan(&lead.ID, &statusVal, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	lead.Status = entity.LeadStatus(statusVal)
	lead.IsActive = true

	return nil
}

// GetByID fetches one lead.
func (r *PGXLeadsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by id: %w", err)
	}
	return lead, nil
}

// GetByUnsubscribeToken resolves the lead owning an unsubscribe token.
func (r *PGXLeadsRepository) GetByUnsubscribeToken(ctx context.Context, token string) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE unsubscribe_token = $1`, token)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by unsubscribe token: %w", err)
	}
	return lead, nil
}

// List retrieves leads matching the filter, newest first.
func (r *PGXLeadsRepository) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + leadColumns + ` FROM leads`)

	var (
		clauses []string
		args    []any
		idx     = 1
	)
	if filter.CampaignID != "" {
		campaignID, err := uuid.Parse(filter.CampaignID)
		if err != nil {
			return nil, fmt.Errorf("parse campaign id: %w", err)
		}
		clauses = append(clauses, fmt.Sprintf("campaign_id = $%d", idx))
		args = append(args, campaignID)
		idx++
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.Quality != "" {
		clauses = append(clauses, fmt.Sprintf("quality = $%d", idx))
		args = append(args, filter.Quality)
		idx++
	}
	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1))
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// ListByCampaign returns every lead of one campaign, oldest first. Used for
// aggregation; no pagination on purpose.
func (r *PGXLeadsRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]entity.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads WHERE campaign_id = $1 ORDER BY created_at ASC`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list leads by campaign: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// Update persists the lead's mutable attributes.
func (r *PGXLeadsRepository) Update(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}

	cmd, err := r.pool.Exec(ctx, `
        UPDATE leads SET
            contact_name = $1,
            contact_title = $2,
            contact_email = $3,
            contact_phone = $4,
            quality_score = $5,
            quality = $6,
            status = $7,
            unsubscribe_token = COALESCE(leads.unsubscribe_token, $8),
            next_follow_up_at = $9,
            notes = $10,
            updated_at = NOW()
        WHERE id = $11
    `,
		lead.ContactName,
		lead.ContactTitle,
		lead.ContactEmail,
		lead.ContactPhone,
		lead.QualityScore,
		qualityOrNil(lead.Quality),
		string(lead.Status),
		lead.UnsubscribeToken,
		lead.NextFollowUpAt,
		lead.Notes,
		lead.ID,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// MarkUnsubscribed flags the lead as unsubscribed. Idempotent.
func (r *PGXLeadsRepository) MarkUnsubscribed(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE leads SET is_unsubscribed = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark lead unsubscribed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// RecordSend bumps the sent counter and moves the lead to contacted.
func (r *PGXLeadsRepository) RecordSend(ctx context.Context, id uuid.UUID, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE leads SET
            emails_sent = emails_sent + 1,
            last_contacted_at = $1,
            status = $2,
            updated_at = NOW()
        WHERE id = $3
    `, at, string(entity.LeadStatusContacted), id)
	if err != nil {
		return fmt.Errorf("record lead send: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// IncrementEngagement bumps the counter for a tracked email interaction.
func (r *PGXLeadsRepository) IncrementEngagement(ctx context.Context, id uuid.UUID, event EngagementEvent) error {
	var column string
	switch event {
	case EventOpened:
		column = "emails_opened"
	case EventClicked:
		column = "emails_clicked"
	case EventReplied:
		column = "emails_replied"
	default:
		return fmt.Errorf("unknown engagement event: %s", event)
	}

	query := fmt.Sprintf(`UPDATE leads SET %s = %s + 1, updated_at = NOW() WHERE id = $1`, column, column)
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment lead engagement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		l            entity.Lead
		campaignID   sql.NullString
		website      sql.NullString
		domain       sql.NullString
		industry     sql.NullString
		companySize  sql.NullString
		location     sql.NullString
		description  sql.NullString
		contactName  sql.NullString
		contactTitle sql.NullString
		contactEmail sql.NullString
		contactPhone sql.NullString
		qualityScore sql.NullFloat64
		quality      sql.NullString
		status       string
		lastContact  sql.NullTime
		lastReply    sql.NullTime
		nextFollowUp sql.NullTime
		unsubToken   sql.NullString
		source       sql.NullString
		notes        sql.NullString
	)

	err := row.Scan(
		&l.ID,
		&campaignID,
		&l.CompanyName,
		&website,
		&domain,
		&industry,
		&companySize,
		&location,
		&description,
		&contactName,
		&contactTitle,
		&contactEmail,
		&contactPhone,
		&qualityScore,
		&quality,
		&status,
		&l.EmailsSent,
		&l.EmailsOpened,
		&l.EmailsClicked,
		&l.EmailsReplied,
		&lastContact,
		&lastReply,
		&nextFollowUp,
		&l.IsActive,
		&l.IsUnsubscribed,
		&l.IsBounced,
		&unsubToken,
		&source,
		&notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Status = entity.LeadStatus(status)
	if campaignID.Valid {
		parsed, err := uuid.Parse(campaignID.String)
		if err != nil {
			return nil, fmt.Errorf("parse campaign_id: %w", err)
		}
		l.CampaignID = &parsed
	}
	l.CompanyWebsite = nullStringToPtr(website)
	l.CompanyDomain = nullStringToPtr(domain)
	l.Industry = nullStringToPtr(industry)
	l.CompanySize = nullStringToPtr(companySize)
	l.Location = nullStringToPtr(location)
	l.Description = nullStringToPtr(description)
	l.ContactName = nullStringToPtr(contactName)
	l.ContactTitle = nullStringToPtr(contactTitle)
	l.ContactEmail = nullStringToPtr(contactEmail)
	l.ContactPhone = nullStringToPtr(contactPhone)
	if qualityScore.Valid {
		v := qualityScore.Float64
		l.QualityScore = &v
	}
	if quality.Valid {
		q := entity.LeadQuality(quality.String)
		l.Quality = &q
	}
	if lastContact.Valid {
		ts := lastContact.Time
		l.LastContactedAt = &ts
	}
	if lastReply.Valid {
		ts := lastReply.Time
		l.LastRespondedAt = &ts
	}
	if nextFollowUp.Valid {
		ts := nextFollowUp.Time
		l.NextFollowUpAt = &ts
	}
	l.UnsubscribeToken = nullStringToPtr(unsubToken)
	l.Source = nullStringToPtr(source)
	l.Notes = nullStringToPtr(notes)

	return &l, nil
}

func qualityOrNil(q *entity.LeadQuality) any {
	if q == nil {
		return nil
	}
	return string(*q)
}
