package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClipFlow defines clip submission and review operations
type ClipFlow interface {
	SubmitClip(ctx context.Context, req *dto.SubmitClipRequest, metadata *ClientMetadata) (*dto.SubmitClipResponse, error)
	ReviewClip(ctx context.Context, req *dto.ReviewClipRequest, metadata *ClientMetadata) (*dto.ReviewClipResponse, error)
	CheckDuplicateURL(ctx context.Context, url string) (*dto.CheckDuplicateURLResponse, error)
	ListClips(ctx context.Context, req *dto.ListClipsRequest) (*dto.ListClipsResponse, error)
}

// ClipFlowImpl implements the clip business flow
type ClipFlowImpl struct {
	clipRepo     repository.ClipRepository
	clipperRepo  repository.ClipperRepository
	campaignRepo repository.CampaignRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewClipFlow creates a new clip flow instance
func NewClipFlow(
	clipRepo repository.ClipRepository,
	clipperRepo repository.ClipperRepository,
	campaignRepo repository.CampaignRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) ClipFlow {
	return &ClipFlowImpl{
		clipRepo:     clipRepo,
		clipperRepo:  clipperRepo,
		campaignRepo: campaignRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

func (f *ClipFlowImpl) SubmitClip(ctx context.Context, req *dto.SubmitClipRequest, metadata *ClientMetadata) (*dto.SubmitClipResponse, error) {
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
	if !campaign.AcceptsSubmissions() {
		return nil, NewBusinessError("CAMPAIGN_NOT_ACTIVE", "Campaign is not accepting submissions", ErrCampaignNotActive)
	}

	clipper, err := f.clipperRepo.ByUUID(ctx, req.ClipperUUID)
	if err != nil {
		return nil, NewBusinessError("CLIPPER_LOOKUP_FAILED", "Failed to lookup clipper", err)
	}
	if clipper == nil {
		return nil, NewBusinessError("CLIPPER_NOT_FOUND", "Clipper not found", ErrClipperNotFound)
	}
	if !clipper.CanSubmit() {
		return nil, NewBusinessError("CLIPPER_CANNOT_SUBMIT", "Clipper account cannot submit clips", ErrClipperCannotSubmit)
	}

	existing, err := f.clipRepo.BySubmissionURL(ctx, req.SubmissionURL)
	if err != nil {
		return nil, NewBusinessError("DUPLICATE_CHECK_FAILED", "Failed to check submission URL", err)
	}
	if existing != nil {
		return nil, NewBusinessError("DUPLICATE_URL", "This URL has already been submitted", ErrDuplicateClipURL)
	}

	var clip models.Clip
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		clip = models.Clip{
			UUID:           uuid.New(),
			CampaignID:     &campaign.ID,
			ClipperID:      &clipper.ID,
			Platform:       models.ClipPlatform(req.Platform),
			SubmissionURL:  req.SubmissionURL,
			ExternalPostID: req.ExternalPostID,
			Status:         models.ClipStatusPending,
		}
		if err := f.clipRepo.Save(txCtx, &clip); err != nil {
			return err
		}

		return f.clipperRepo.IncrementCounters(txCtx, clipper.ID, 1, 0)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Clip submission failed: %s", err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionClipSubmitted, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CLIP_SUBMISSION_FAILED", "Clip submission failed", err)
	}

	msg := fmt.Sprintf("Clip submitted: %s", clip.UUID.String())
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionClipSubmitted, msg, true, nil, metadata)

	return &dto.SubmitClipResponse{
		Message:   "Clip submitted successfully",
		ID:        clip.ID,
		UUID:      clip.UUID.String(),
		Status:    string(clip.Status),
		CreatedAt: clip.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (f *ClipFlowImpl) ReviewClip(ctx context.Context, req *dto.ReviewClipRequest, metadata *ClientMetadata) (*dto.ReviewClipResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	clip, err := f.clipRepo.ByUUID(ctx, req.ClipUUID)
	if err != nil {
		return nil, NewBusinessError("CLIP_LOOKUP_FAILED", "Failed to lookup clip", err)
	}
	if clip == nil {
		return nil, NewBusinessError("CLIP_NOT_FOUND", "Clip not found", ErrClipNotFound)
	}
	if !clip.IsReviewable() {
		return nil, NewBusinessError("CLIP_NOT_PENDING", "Clip is not pending review", ErrClipNotPending)
	}

	newStatus := models.ClipStatusRejected
	action := models.AuditActionClipRejected
	if req.Approve {
		newStatus = models.ClipStatusApproved
		action = models.AuditActionClipApproved
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clipRepo.UpdateStatus(txCtx, clip.ID, newStatus); err != nil {
			return err
		}

		if req.Approve && clip.ClipperID != nil {
			return f.clipperRepo.IncrementCounters(txCtx, *clip.ClipperID, 0, 1)
		}
		return nil
	})
	if err != nil {
		errMsg := fmt.Sprintf("Clip review failed for %s: %s", clip.UUID.String(), err.Error())
		_ = recordAudit(ctx, f.auditRepo, action, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CLIP_REVIEW_FAILED", "Clip review failed", err)
	}

	msg := fmt.Sprintf("Clip %s: %s", newStatus, clip.UUID.String())
	_ = recordAudit(ctx, f.auditRepo, action, msg, true, nil, metadata)

	return &dto.ReviewClipResponse{
		Message: fmt.Sprintf("Clip %s", newStatus),
		UUID:    clip.UUID.String(),
		Status:  string(newStatus),
	}, nil
}

func (f *ClipFlowImpl) CheckDuplicateURL(ctx context.Context, url string) (*dto.CheckDuplicateURLResponse, error) {
	if url == "" {
		return nil, NewBusinessError("INVALID_REQUEST", "submission URL is required", nil)
	}

	existing, err := f.clipRepo.BySubmissionURL(ctx, url)
	if err != nil {
		return nil, NewBusinessError("DUPLICATE_CHECK_FAILED", "Failed to check submission URL", err)
	}
	if existing == nil {
		return &dto.CheckDuplicateURLResponse{IsDuplicate: false}, nil
	}

	resp := &dto.CheckDuplicateURLResponse{IsDuplicate: true}
	submittedAt := existing.CreatedAt.Format(time.RFC3339)
	resp.SubmittedAt = &submittedAt
	if existing.Clipper != nil {
		resp.ClipperName = &existing.Clipper.Name
	}

	return resp, nil
}

func (f *ClipFlowImpl) ListClips(ctx context.Context, req *dto.ListClipsRequest) (*dto.ListClipsResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, NewBusinessError("INVALID_PAGE", "page must be at least 1", ErrInvalidPage)
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "page size must be between 1 and 100", ErrInvalidPageSize)
	}

	var filter models.ClipFilter
	if req.Status != nil {
		status := models.ClipStatus(*req.Status)
		filter.Status = &status
	}
	if req.CampaignUUID != nil {
		campaign, err := f.campaignRepo.ByUUID(ctx, *req.CampaignUUID)
		if err != nil {
			return nil, err
		}
		if campaign == nil {
			return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
		}
		filter.CampaignID = &campaign.ID
	}
	if req.ClipperUUID != nil {
		clipper, err := f.clipperRepo.ByUUID(ctx, *req.ClipperUUID)
		if err != nil {
			return nil, err
		}
		if clipper == nil {
			return nil, NewBusinessError("CLIPPER_NOT_FOUND", "Clipper not found", ErrClipperNotFound)
		}
		filter.ClipperID = &clipper.ID
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "start date is invalid", err)
		}
		filter.CreatedAtOrAfter = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "end date is invalid", err)
		}
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		filter.CreatedAtOrBefore = &endOfDay
	}

	total, err := f.clipRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	clips, err := f.clipRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClipItem, 0, len(clips))
	for _, clip := range clips {
		items = append(items, toClipItem(clip))
	}

	return &dto.ListClipsResponse{
		Message: "Clips retrieved",
		Items:   items,
		Total:   total,
	}, nil
}

func toClipItem(clip *models.Clip) dto.ClipItem {
	item := dto.ClipItem{
		ID:            clip.ID,
		UUID:          clip.UUID.String(),
		Platform:      string(clip.Platform),
		SubmissionURL: clip.SubmissionURL,
		Views:         clip.Views,
		Likes:         clip.Likes,
		Comments:      clip.Comments,
		Shares:        clip.Shares,
		Status:        string(clip.Status),
		IsDuplicate:   clip.IsDuplicate,
		TagsFound:     clip.TagsFound,
		TagsMissing:   clip.TagsMissing,
		CreatedAt:     clip.CreatedAt.Format(time.RFC3339),
	}
	if clip.Campaign != nil {
		item.CampaignName = clip.Campaign.Name
	}
	if clip.Clipper != nil {
		item.ClipperName = clip.Clipper.Name
	}
	if clip.PayoutAmount != nil {
		amount := clip.PayoutAmount.StringFixed(2)
		item.PayoutAmount = &amount
	}
	if clip.MetricsUpdatedAt != nil {
		updatedAt := clip.MetricsUpdatedAt.Format(time.RFC3339)
		item.MetricsUpdatedAt = &updatedAt
	}
	return item
}
