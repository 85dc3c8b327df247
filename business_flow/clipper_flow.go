package businessflow

import (
	"context"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
)

// ClipperFlow defines clipper profile management operations
type ClipperFlow interface {
	ListClippers(ctx context.Context, tier *string, page, pageSize int) (*dto.ListClippersResponse, error)
	UpdateClipperTier(ctx context.Context, req *dto.UpdateClipperTierRequest, metadata *ClientMetadata) (*dto.ClipperResponse, error)
}

// ClipperFlowImpl implements the clipper business flow
type ClipperFlowImpl struct {
	clipperRepo repository.ClipperRepository
}

// NewClipperFlow creates a new clipper flow instance
func NewClipperFlow(clipperRepo repository.ClipperRepository) ClipperFlow {
	return &ClipperFlowImpl{
		clipperRepo: clipperRepo,
	}
}

func (f *ClipperFlowImpl) ListClippers(ctx context.Context, tier *string, page, pageSize int) (*dto.ListClippersResponse, error) {
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

	var filter models.ClipperFilter
	if tier != nil {
		clipperTier := models.ClipperTier(*tier)
		filter.Tier = &clipperTier
	}

	total, err := f.clipperRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	clippers, err := f.clipperRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClipperItem, 0, len(clippers))
	for _, clipper := range clippers {
		items = append(items, toClipperItem(clipper))
	}

	return &dto.ListClippersResponse{
		Message: "Clippers retrieved",
		Items:   items,
		Total:   total,
	}, nil
}

func (f *ClipperFlowImpl) UpdateClipperTier(ctx context.Context, req *dto.UpdateClipperTierRequest, metadata *ClientMetadata) (*dto.ClipperResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	clipper, err := f.clipperRepo.ByUUID(ctx, req.ClipperUUID)
	if err != nil {
		return nil, NewBusinessError("CLIPPER_LOOKUP_FAILED", "Failed to lookup clipper", err)
	}
	if clipper == nil {
		return nil, NewBusinessError("CLIPPER_NOT_FOUND", "Clipper not found", ErrClipperNotFound)
	}

	tier := models.ClipperTier(req.Tier)
	if err := f.clipperRepo.UpdateTier(ctx, clipper.ID, tier); err != nil {
		return nil, NewBusinessError("TIER_UPDATE_FAILED", "Failed to update clipper tier", err)
	}
	clipper.Tier = tier

	return &dto.ClipperResponse{
		Message: "Clipper tier updated",
		Clipper: toClipperItem(clipper),
	}, nil
}

func toClipperItem(clipper *models.Clipper) dto.ClipperItem {
	return dto.ClipperItem{
		ID:             clipper.ID,
		UUID:           clipper.UUID.String(),
		Name:           clipper.Name,
		Email:          clipper.Email,
		Tier:           string(clipper.Tier),
		TotalViews:     clipper.TotalViews,
		TotalEarnings:  clipper.TotalEarnings.StringFixed(2),
		SubmittedClips: clipper.SubmittedClips,
		ApprovedClips:  clipper.ApprovedClips,
		Status:         string(clipper.Status),
		CreatedAt:      clipper.CreatedAt.Format(time.RFC3339),
	}
}
