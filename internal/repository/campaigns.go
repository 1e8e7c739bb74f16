package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
)

// ErrCampaignNotFound is returned when no campaign matches the lookup criteria.
var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignStats carries the aggregate counters overwritten after each run.
type CampaignStats struct {
	TotalLeads     int
	QualifiedLeads int
	EmailsSent     int
	Status         entity.CampaignStatus
}

// CampaignsRepository describes persistence operations for campaigns.
type CampaignsRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	List(ctx context.Context, filter dto.CampaignListFilter) ([]entity.Campaign, error)
	Update(ctx context.Context, campaign *entity.Campaign) error
	UpdateStats(ctx context.Context, id uuid.UUID, stats CampaignStats) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXCampaignsRepository implements CampaignsRepository using pgx.
type PGXCampaignsRepository struct {
	pool pgxPool
}

// NewPGXCampaignsRepository wires a pgx backed repository.
func NewPGXCampaignsRepository(pool *pgxpool.Pool) *PGXCampaignsRepository {
	return &PGXCampaignsRepository{pool: pool}
}

const campaignColumns = `
	id, name, description, target_criteria, email_template, subject_template,
	follow_up_enabled, follow_up_delays, max_follow_ups, daily_limit, total_limit,
	status, total_leads, qualified_leads, emails_sent, emails_opened,
	emails_replied, meetings_booked, start_date, end_date, created_at, updated_at`

// Create inserts a campaign row and fills in generated fields.
func (r *PGXCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign payload is nil")
	}

	criteria, err := json.Marshal(campaign.TargetCriteria)
	if err != nil {
		return fmt.Errorf("marshal target criteria: %w", err)
	}
	delays, err := json.Marshal(delaysOrDefault(campaign.FollowUpDelays))
	if err != nil {
		return fmt.Errorf("marshal follow-up delays: %w", err)
	}

	status := campaign.Status
	if status == "" {
		status = entity.CampaignStatusDraft
	}
	maxFollowUps := campaign.MaxFollowUps
	if maxFollowUps <= 0 {
		maxFollowUps = 3
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO campaigns (
            name, description, target_criteria, email_template, subject_template,
            follow_up_enabled, follow_up_delays, max_follow_ups, daily_limit, total_limit, status
        ) VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7::jsonb, $8, $9, $10, $11)
        RETURNING id, status, created_at, updated_at
    `,
		campaign.Name,
		campaign.Description,
		string(criteria),
		campaign.EmailTemplate,
		campaign.SubjectTemplate,
		campaign.FollowUpEnabled,
		string(delays),
		maxFollowUps,
		campaign.DailyLimit,
		campaign.TotalLimit,
		string(status),
	)

	var statusVal string
	if err := row.Scan(&campaign.ID, &statusVal, &campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	campaign.Status = entity.CampaignStatus(statusVal)
	campaign.MaxFollowUps = maxFollowUps

	return nil
}

// GetByID fetches one campaign.
func (r *PGXCampaignsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	campaign, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("query campaign by id: %w", err)
	}
	return campaign, nil
}

// List retrieves campaigns matching the filter, most recent first.
func (r *PGXCampaignsRepository) List(ctx context.Context, filter dto.CampaignListFilter) ([]entity.Campaign, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + campaignColumns + ` FROM campaigns`)

	var args []any
	if filter.Status != "" {
		query.WriteString(` WHERE status = $1`)
		args = append(args, filter.Status)
	}
	query.WriteString(` ORDER BY created_at DESC`)

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
	query.WriteString(fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2))
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []entity.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, *campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

// Update persists all mutable campaign attributes.
func (r *PGXCampaignsRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign payload is nil")
	}

	criteria, err := json.Marshal(campaign.TargetCriteria)
	if err != nil {
		return fmt.Errorf("marshal target criteria: %w", err)
	}
	delays, err := json.Marshal(delaysOrDefault(campaign.FollowUpDelays))
	if err != nil {
		return fmt.Errorf("marshal follow-up delays: %w", err)
	}

	cmd, err := r.pool.Exec(ctx, `
        UPDATE campaigns SET
            name = $1,
            description = $2,
            target_criteria = $3::jsonb,
            email_template = $4,
            subject_template = $5,
            follow_up_enabled = $6,
            follow_up_delays = $7::jsonb,
            max_follow_ups = $8,
            status = $9,
            updated_at = NOW()
        WHERE id = $10
    `,
		campaign.Name,
		campaign.Description,
		string(criteria),
		campaign.EmailTemplate,
		campaign.SubjectTemplate,
		campaign.FollowUpEnabled,
		string(delays),
		campaign.MaxFollowUps,
		string(campaign.Status),
		campaign.ID,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// UpdateStats overwrites the campaign's aggregate counters. Run results
// replace the previous snapshot rather than merging into it.
func (r *PGXCampaignsRepository) UpdateStats(ctx context.Context, id uuid.UUID, stats CampaignStats) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE campaigns SET
            total_leads = $1,
            qualified_leads = $2,
            emails_sent = $3,
            status = $4,
            updated_at = NOW()
        WHERE id = $5
    `, stats.TotalLeads, stats.QualifiedLeads, stats.EmailsSent, string(stats.Status), id)
	if err != nil {
		return fmt.Errorf("update campaign stats: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// Delete removes a campaign; leads cascade at the schema level.
func (r *PGXCampaignsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func scanCampaign(row pgx.Row) (*entity.Campaign, error) {
	var (
		c            entity.Campaign
		description  sql.NullString
		criteriaJSON []byte
		emailTmpl    sql.NullString
		subjectTmpl  sql.NullString
		delaysJSON   []byte
		dailyLimit   sql.NullInt64
		totalLimit   sql.NullInt64
		status       string
		startDate    sql.NullTime
		endDate      sql.NullTime
	)

	err := row.Scan(
		&c.ID,
		&c.Name,
		&description,
		&criteriaJSON,
		&emailTmpl,
		&subjectTmpl,
		&c.FollowUpEnabled,
		&delaysJSON,
		&c.MaxFollowUps,
		&dailyLimit,
		&totalLimit,
		&status,
		&c.TotalLeads,
		&c.QualifiedLeads,
		&c.EmailsSent,
		&c.EmailsOpened,
		&c.EmailsReplied,
		&c.MeetingsBooked,
		&startDate,
		&endDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = entity.CampaignStatus(status)
	c.Description = nullStringToPtr(description)
	c.EmailTemplate = nullStringToPtr(emailTmpl)
	c.SubjectTemplate = nullStringToPtr(subjectTmpl)
	if dailyLimit.Valid {
		v := int(dailyLimit.Int64)
		c.DailyLimit = &v
	}
	if totalLimit.Valid {
		v := int(totalLimit.Int64)
		c.TotalLimit = &v
	}
	if startDate.Valid {
		ts := startDate.Time
		c.StartDate = &ts
	}
	if endDate.Valid {
		ts := endDate.Time
		c.EndDate = &ts
	}
	if len(criteriaJSON) > 0 {
		if err := json.Unmarshal(criteriaJSON, &c.TargetCriteria); err != nil {
			return nil, fmt.Errorf("unmarshal target criteria: %w", err)
		}
	}
	if len(delaysJSON) > 0 {
		if err := json.Unmarshal(delaysJSON, &c.FollowUpDelays); err != nil {
			return nil, fmt.Errorf("unmarshal follow-up delays: %w", err)
		}
	}

	return &c, nil
}

func delaysOrDefault(delays []int) []int {
	if len(delays) == 0 {
		return []int{3, 7, 14}
	}
	return delays
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}
