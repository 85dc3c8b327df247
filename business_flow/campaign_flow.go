package businessflow

import (
	"context"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CampaignFlow defines campaign management operations
type CampaignFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error)
	UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, campaignUUID string) (*dto.CampaignResponse, error)
	ListCampaigns(ctx context.Context, status *string, page, pageSize int) (*dto.ListCampaignsResponse, error)
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	clientRepo   repository.ClientRepository
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	clientRepo repository.ClientRepository,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		clientRepo:   clientRepo,
	}
}

func (f *CampaignFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	client, err := f.clientRepo.ByUUID(ctx, req.ClientUUID)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to lookup client", err)
	}
	if client == nil {
		return nil, NewBusinessError("CLIENT_NOT_FOUND", "Client not found", ErrClientNotFound)
	}
	if !*client.IsActive {
		return nil, NewBusinessError("CLIENT_INACTIVE", "Client is inactive", ErrClientInactive)
	}

	campaign := models.Campaign{
		UUID:        uuid.New(),
		ClientID:    client.ID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.CampaignStatusDraft,
	}
	if req.RequiredTags != nil {
		campaign.RequiredTags = pq.StringArray(req.RequiredTags)
	}

	rates := []struct {
		raw  *string
		dest *decimal.Decimal
		name string
	}{
		{req.Tier1CpmRate, &campaign.Tier1CpmRate, "tier1 cpm rate"},
		{req.Tier2CpmRate, &campaign.Tier2CpmRate, "tier2 cpm rate"},
		{req.Tier3FixedRate, &campaign.Tier3FixedRate, "tier3 fixed rate"},
		{req.MaxPayoutPerClip, &campaign.MaxPayoutPerClip, "max payout per clip"},
		{req.Budget, &campaign.Budget, "budget"},
	}
	for _, r := range rates {
		if r.raw == nil {
			continue
		}
		value, err := decimal.NewFromString(*r.raw)
		if err != nil || value.IsNegative() {
			return nil, NewBusinessErrorf("INVALID_RATE", "%s must be a non-negative number", err, r.name)
		}
		*r.dest = value
	}

	if req.StartsAt != nil {
		startsAt, err := time.Parse("2006-01-02", *req.StartsAt)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "starts_at is invalid", err)
		}
		campaign.StartsAt = &startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := time.Parse("2006-01-02", *req.EndsAt)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "ends_at is invalid", err)
		}
		campaign.EndsAt = &endsAt
	}

	if err := f.campaignRepo.Save(ctx, &campaign); err != nil {
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	campaign.Client = client

	return &dto.CampaignResponse{
		Message:  "Campaign created successfully",
		Campaign: toCampaignItem(&campaign),
	}, nil
}

func (f *CampaignFlowImpl) UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	campaign, err := f.campaignRepo.ByUUID(ctx, req.CampaignUUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = req.Description
	}
	if req.RequiredTags != nil {
		campaign.RequiredTags = pq.StringArray(req.RequiredTags)
	}

	rates := []struct {
		raw  *string
		dest *decimal.Decimal
		name string
	}{
		{req.Tier1CpmRate, &campaign.Tier1CpmRate, "tier1 cpm rate"},
		{req.Tier2CpmRate, &campaign.Tier2CpmRate, "tier2 cpm rate"},
		{req.Tier3FixedRate, &campaign.Tier3FixedRate, "tier3 fixed rate"},
		{req.MaxPayoutPerClip, &campaign.MaxPayoutPerClip, "max payout per clip"},
		{req.Budget, &campaign.Budget, "budget"},
	}
	for _, r := range rates {
		if r.raw == nil {
			continue
		}
		value, err := decimal.NewFromString(*r.raw)
		if err != nil || value.IsNegative() {
			return nil, NewBusinessErrorf("INVALID_RATE", "%s must be a non-negative number", err, r.name)
		}
		*r.dest = value
	}

	if req.StartsAt != nil {
		startsAt, err := time.Parse("2006-01-02", *req.StartsAt)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "starts_at is invalid", err)
		}
		campaign.StartsAt = &startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := time.Parse("2006-01-02", *req.EndsAt)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "ends_at is invalid", err)
		}
		campaign.EndsAt = &endsAt
	}

	if req.Status != nil {
		newStatus := models.CampaignStatus(*req.Status)
		if newStatus != campaign.Status {
			if !campaign.CanTransitionTo(newStatus) {
				return nil, NewBusinessErrorf("INVALID_TRANSITION", "campaign cannot go from %s to %s", ErrInvalidStatusTransition, campaign.Status, newStatus)
			}
			campaign.Status = newStatus
		}
	}

	if err := f.campaignRepo.Update(ctx, *campaign); err != nil {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	return &dto.CampaignResponse{
		Message:  "Campaign updated successfully",
		Campaign: toCampaignItem(campaign),
	}, nil
}

func (f *CampaignFlowImpl) GetCampaign(ctx context.Context, campaignUUID string) (*dto.CampaignResponse, error) {
	campaign, err := f.campaignRepo.ByUUID(ctx, campaignUUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	return &dto.CampaignResponse{
		Message:  "Campaign retrieved",
		Campaign: toCampaignItem(campaign),
	}, nil
}

func (f *CampaignFlowImpl) ListCampaigns(ctx context.Context, status *string, page, pageSize int) (*dto.ListCampaignsResponse, error) {
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, NewBusinessError("INVALID_PAGE", "page must be at least 1", ErrInvalidPage)
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "page size must be between 1 and 100", ErrInvalidPageSize)
	}

	var filter models.CampaignFilter
	if status != nil {
		campaignStatus := models.CampaignStatus(*status)
		filter.Status = &campaignStatus
	}

	total, err := f.campaignRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	campaigns, err := f.campaignRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CampaignItem, 0, len(campaigns))
	for _, campaign := range campaigns {
		items = append(items, toCampaignItem(campaign))
	}

	return &dto.ListCampaignsResponse{
		Message: "Campaigns retrieved",
		Items:   items,
		Total:   total,
	}, nil
}

func toCampaignItem(campaign *models.Campaign) dto.CampaignItem {
	item := dto.CampaignItem{
		ID:               campaign.ID,
		UUID:             campaign.UUID.String(),
		Name:             campaign.Name,
		Description:      campaign.Description,
		Tier1CpmRate:     campaign.Tier1CpmRate.StringFixed(2),
		Tier2CpmRate:     campaign.Tier2CpmRate.StringFixed(2),
		Tier3FixedRate:   campaign.Tier3FixedRate.StringFixed(2),
		MaxPayoutPerClip: campaign.MaxPayoutPerClip.StringFixed(2),
		Budget:           campaign.Budget.StringFixed(2),
		RequiredTags:     campaign.RequiredTags,
		Status:           string(campaign.Status),
		CreatedAt:        campaign.CreatedAt.Format(time.RFC3339),
	}
	if campaign.Client != nil {
		item.ClientName = campaign.Client.Name
	}
	if campaign.StartsAt != nil {
		startsAt := campaign.StartsAt.Format("2006-01-02")
		item.StartsAt = &startsAt
	}
	if campaign.EndsAt != nil {
		endsAt := campaign.EndsAt.Format("2006-01-02")
		item.EndsAt = &endsAt
	}
	return item
}
