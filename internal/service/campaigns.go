package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
	"github.com/octobees/sales-automation/api/internal/repository"
)

// CampaignRunner executes campaign passes.
type CampaignRunner interface {
	Run(ctx context.Context, campaignID uuid.UUID) (dto.RunResult, error)
	RunFollowUps(ctx context.Context, campaignID uuid.UUID) (dto.RunResult, error)
}

// CampaignsService implements campaign CRUD and run orchestration.
type CampaignsService struct {
	repo   repository.CampaignsRepository
	runner CampaignRunner
}

// NewCampaignsService constructs a CampaignsService.
func NewCampaignsService(repo repository.CampaignsRepository, runner CampaignRunner) *CampaignsService {
	return &CampaignsService{repo: repo, runner: runner}
}

// Create validates and persists a new campaign in draft state.
func (s *CampaignsService) Create(ctx context.Context, req dto.CreateCampaignRequest) (*entity.Campaign, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("campaign name is required")
	}

	campaign := &entity.Campaign{
		Name:            name,
		Description:     req.Description,
		TargetCriteria:  req.TargetCriteria,
		EmailTemplate:   req.EmailTemplate,
		SubjectTemplate: req.SubjectTemplate,
		FollowUpDelays:  req.FollowUpDelays,
		DailyLimit:      req.DailyLimit,
		TotalLimit:      req.TotalLimit,
		Status:          entity.CampaignStatusDraft,
	}
	if req.FollowUpEnabled != nil {
		campaign.FollowUpEnabled = *req.FollowUpEnabled
	}
	if req.MaxFollowUps != nil {
		campaign.MaxFollowUps = *req.MaxFollowUps
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Get fetches one campaign.
func (s *CampaignsService) Get(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns campaigns matching the filter.
func (s *CampaignsService) List(ctx context.Context, filter dto.CampaignListFilter) ([]entity.Campaign, error) {
	if filter.Status != "" && !validCampaignStatus(filter.Status) {
		return nil, errors.New("unknown campaign status")
	}
	return s.repo.List(ctx, filter)
}

// Update applies a partial update to an existing campaign.
func (s *CampaignsService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCampaignRequest) (*entity.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("campaign name must not be empty")
		}
		campaign.Name = name
	}
	if req.Description != nil {
		campaign.Description = req.Description
	}
	if req.TargetCriteria != nil {
		campaign.TargetCriteria = *req.TargetCriteria
	}
	if req.EmailTemplate != nil {
		campaign.EmailTemplate = req.EmailTemplate
	}
	if req.SubjectTemplate != nil {
		campaign.SubjectTemplate = req.SubjectTemplate
	}
	if req.FollowUpEnabled != nil {
		campaign.FollowUpEnabled = *req.FollowUpEnabled
	}
	if req.MaxFollowUps != nil {
		campaign.MaxFollowUps = *req.MaxFollowUps
	}
	if req.Status != nil {
		if !validCampaignStatus(*req.Status) {
			return nil, errors.New("unknown campaign status")
		}
		campaign.Status = entity.CampaignStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete removes a campaign and its leads.
func (s *CampaignsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Run executes the campaign pipeline once.
func (s *CampaignsService) Run(ctx context.Context, id uuid.UUID) (dto.RunResult, error) {
	return s.runner.Run(ctx, id)
}

// RunFollowUps sends due follow-up emails for the campaign's leads.
func (s *CampaignsService) RunFollowUps(ctx context.Context, id uuid.UUID) (dto.RunResult, error) {
	return s.runner.RunFollowUps(ctx, id)
}

func validCampaignStatus(status string) bool {
	switch entity.CampaignStatus(status) {
	case entity.CampaignStatusDraft, entity.CampaignStatusActive, entity.CampaignStatusPaused,
		entity.CampaignStatusCompleted, entity.CampaignStatusArchived:
		return true
	}
	return false
}
