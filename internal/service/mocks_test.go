package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
	"github.com/octobees/sales-automation/api/internal/repository"
)

type mockCampaignsRepository struct {
	create      func(ctx context.Context, campaign *entity.Campaign) error
	getByID     func(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	list        func(ctx context.Context, filter dto.CampaignListFilter) ([]entity.Campaign, error)
	update      func(ctx context.Context, campaign *entity.Campaign) error
	updateStats func(ctx context.Context, id uuid.UUID, stats repository.CampaignStats) error
	remove      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	if m.create != nil {
		return m.create(ctx, campaign)
	}
	return errors.New("create not implemented")
}

func (m *mockCampaignsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("getByID not implemented")
}

func (m *mockCampaignsRepository) List(ctx context.Context, filter dto.CampaignListFilter) ([]entity.Campaign, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockCampaignsRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	if m.update != nil {
		return m.update(ctx, campaign)
	}
	return errors.New("update not implemented")
}

func (m *mockCampaignsRepository) UpdateStats(ctx context.Context, id uuid.UUID, stats repository.CampaignStats) error {
	if m.updateStats != nil {
		return m.updateStats(ctx, id, stats)
	}
	return errors.New("updateStats not implemented")
}

func (m *mockCampaignsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.remove != nil {
		return m.remove(ctx, id)
	}
	return errors.New("delete not implemented")
}

type mockLeadsRepository struct {
	create              func(ctx context.Context, lead *entity.Lead) error
	getByID             func(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	getByToken          func(ctx context.Context, token string) (*entity.Lead, error)
	list                func(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error)
	listByCampaign      func(ctx context.Context, campaignID uuid.UUID) ([]entity.Lead, error)
	update              func(ctx context.Context, lead *entity.Lead) error
	markUnsubscribed    func(ctx context.Context, id uuid.UUID) error
	recordSend          func(ctx context.Context, id uuid.UUID, at time.Time) error
	incrementEngagement func(ctx context.Context, id uuid.UUID, event repository.EngagementEvent) error
}

func (m *mockLeadsRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if m.create != nil {
		return m.create(ctx, lead)
	}
	return errors.New("create not implemented")
}

func (m *mockLeadsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("getByID not implemented")
}

func (m *mockLeadsRepository) GetByUnsubscribeToken(ctx context.Context, token string) (*entity.Lead, error) {
	if m.getByToken != nil {
		return m.getByToken(ctx, token)
	}
	return nil, errors.New("getByUnsubscribeToken not implemented")
}

func (m *mockLeadsRepository) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockLeadsRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]entity.Lead, error) {
	if m.listByCampaign != nil {
		return m.listByCampaign(ctx, campaignID)
	}
	return nil, errors.New("listByCampaign not implemented")
}

func (m *mockLeadsRepository) Update(ctx context.Context, lead *entity.Lead) error {
	if m.update != nil {
		return m.update(ctx, lead)
	}
	return errors.New("update not implemented")
}

func (m *mockLeadsRepository) MarkUnsubscribed(ctx context.Context, id uuid.UUID) error {
	if m.markUnsubscribed != nil {
		return m.markUnsubscribed(ctx, id)
	}
	return errors.New("markUnsubscribed not implemented")
}

func (m *mockLeadsRepository) RecordSend(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.recordSend != nil {
		return m.recordSend(ctx, id, at)
	}
	return errors.New("recordSend not implemented")
}

func (m *mockLeadsRepository) IncrementEngagement(ctx context.Context, id uuid.UUID, event repository.EngagementEvent) error {
	if m.incrementEngagement != nil {
		return m.incrementEngagement(ctx, id, event)
	}
	return errors.New("incrementEngagement not implemented")
}
