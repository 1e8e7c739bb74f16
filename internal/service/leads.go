package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/octobees/sales-automation/api/internal/contact"
	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
	"github.com/octobees/sales-automation/api/internal/repository"
)

// ErrInvalidLeadUpdate is returned for update payloads that fail validation.
var ErrInvalidLeadUpdate = errors.New("invalid lead update")

// LeadsService implements lead listing, updates, engagement tracking and
// unsubscribe handling.
type LeadsService struct {
	repo          repository.LeadsRepository
	defaultRegion string
}

// NewLeadsService constructs a LeadsService. defaultRegion is the ISO country
// code used when a phone number lacks an international prefix.
func NewLeadsService(repo repository.LeadsRepository, defaultRegion string) *LeadsService {
	if defaultRegion == "" {
		defaultRegion = "US"
	}
	return &LeadsService{repo: repo, defaultRegion: defaultRegion}
}

// Get fetches one lead.
func (s *LeadsService) Get(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns leads matching the filter.
func (s *LeadsService) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update. Contact fields are normalized: emails are
// validated and lowercased, phone numbers converted to E.164.
func (s *LeadsService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLeadRequest) (*entity.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContactName != nil {
		lead.ContactName = req.ContactName
	}
	if req.ContactTitle != nil {
		lead.ContactTitle = req.ContactTitle
	}
	if req.ContactEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.ContactEmail))
		if email != "" && !contact.ValidEmail(email) {
			return nil, fmt.Errorf("%w: malformed contact email", ErrInvalidLeadUpdate)
		}
		lead.ContactEmail = &email
	}
	if req.ContactPhone != nil {
		phone, err := s.normalizePhone(*req.ContactPhone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLeadUpdate, err)
		}
		lead.ContactPhone = &phone
	}
	if req.Status != nil {
		if !validLeadStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidLeadUpdate, *req.Status)
		}
		lead.Status = entity.LeadStatus(*req.Status)
	}
	if req.QualityScore != nil {
		score := *req.QualityScore
		if score < 0 || score > 1 {
			return nil, fmt.Errorf("%w: quality score must be within [0, 1]", ErrInvalidLeadUpdate)
		}
		quality := entity.QualityForScore(score)
		lead.QualityScore = &score
		lead.Quality = &quality
	}
	if req.Notes != nil {
		lead.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// TrackEvent records an engagement event against a lead.
func (s *LeadsService) TrackEvent(ctx context.Context, id uuid.UUID, event string) error {
	switch repository.EngagementEvent(event) {
	case repository.EventOpened, repository.EventClicked, repository.EventReplied:
	default:
		return fmt.Errorf("unknown engagement event %q", event)
	}
	return s.repo.IncrementEngagement(ctx, id, repository.EngagementEvent(event))
}

// Unsubscribe resolves an opt-out token and flags the lead. The second return
// reports whether the lead had already opted out; repeating the call is safe.
func (s *LeadsService) Unsubscribe(ctx context.Context, token string) (*entity.Lead, bool, error) {
	lead, err := s.repo.GetByUnsubscribeToken(ctx, token)
	if err != nil {
		return nil, false, err
	}
	if lead.IsUnsubscribed {
		return lead, true, nil
	}
	if err := s.repo.MarkUnsubscribed(ctx, lead.ID); err != nil {
		return nil, false, err
	}
	lead.IsUnsubscribed = true
	return lead, false, nil
}

func (s *LeadsService) normalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	parsed, err := phonenumbers.Parse(trimmed, s.defaultRegion)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", errors.New("phone number is not valid")
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

func validLeadStatus(status string) bool {
	switch entity.LeadStatus(status) {
	case entity.LeadStatusNew, entity.LeadStatusResearching, entity.LeadStatusQualified,
		entity.LeadStatusDisqualified, entity.LeadStatusContacted, entity.LeadStatusResponded,
		entity.LeadStatusMeetingBooked, entity.LeadStatusWon, entity.LeadStatusLost:
		return true
	}
	return false
}
