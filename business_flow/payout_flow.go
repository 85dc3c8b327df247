package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// payoutGenerationLockKey serializes batch generation across instances
	payoutGenerationLockKey = "payout:generation:lock"
	payoutGenerationLockTTL = 5 * time.Minute
)

// PayoutFlow generates payout batches from approved clips
type PayoutFlow interface {
	GeneratePayoutBatch(ctx context.Context, req *dto.GeneratePayoutBatchRequest, metadata *ClientMetadata) (*dto.GeneratePayoutBatchResponse, error)
	GetBatch(ctx context.Context, batchUUID string) (*dto.GetPayoutBatchResponse, error)
	ListBatches(ctx context.Context, page, pageSize int) (*dto.ListPayoutBatchesResponse, error)
}

// PayoutFlowImpl implements the payout generation business flow
type PayoutFlowImpl struct {
	clipRepo     repository.ClipRepository
	clipperRepo  repository.ClipperRepository
	batchRepo    repository.PayoutBatchRepository
	payoutRepo   repository.ClipperPayoutRepository
	auditRepo    repository.AuditLogRepository
	settingsFlow SettingsFlow
	rc           *redis.Client
	db           *gorm.DB
}

// NewPayoutFlow creates a new payout flow instance
func NewPayoutFlow(
	clipRepo repository.ClipRepository,
	clipperRepo repository.ClipperRepository,
	batchRepo repository.PayoutBatchRepository,
	payoutRepo repository.ClipperPayoutRepository,
	auditRepo repository.AuditLogRepository,
	settingsFlow SettingsFlow,
	db *gorm.DB,
	rc *redis.Client,
) PayoutFlow {
	return &PayoutFlowImpl{
		clipRepo:     clipRepo,
		clipperRepo:  clipperRepo,
		batchRepo:    batchRepo,
		payoutRepo:   payoutRepo,
		auditRepo:    auditRepo,
		settingsFlow: settingsFlow,
		rc:           rc,
		db:           db,
	}
}

func (f *PayoutFlowImpl) GeneratePayoutBatch(ctx context.Context, req *dto.GeneratePayoutBatchRequest, metadata *ClientMetadata) (*dto.GeneratePayoutBatchResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return nil, NewBusinessError("INVALID_PERIOD", "period start is invalid", err)
	}
	periodEndDay, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return nil, NewBusinessError("INVALID_PERIOD", "period end is invalid", err)
	}
	if periodStart.After(periodEndDay) {
		return nil, NewBusinessError("INVALID_PERIOD", "period start cannot be after period end", ErrInvalidPeriod)
	}
	// Inclusive day boundary
	periodEnd := periodEndDay.Add(24*time.Hour - time.Nanosecond)

	if f.rc != nil {
		acquired, err := f.rc.SetNX(ctx, payoutGenerationLockKey, time.Now().UTC().Format(time.RFC3339), payoutGenerationLockTTL).Result()
		if err == nil && !acquired {
			return nil, NewBusinessError("GENERATION_IN_PROGRESS", "A payout generation is already running", ErrGenerationInProgress)
		}
		if err == nil {
			defer f.rc.Del(context.WithoutCancel(ctx), payoutGenerationLockKey)
		}
	}

	payoutSettings, err := f.settingsFlow.GetPayoutSettings(ctx)
	if err != nil {
		return nil, NewBusinessError("SETTINGS_LOOKUP_FAILED", "Failed to resolve payout settings", err)
	}
	tierSettings, err := f.settingsFlow.GetTierSettings(ctx)
	if err != nil {
		return nil, NewBusinessError("SETTINGS_LOOKUP_FAILED", "Failed to resolve tier settings", err)
	}

	var batch models.PayoutBatch
	var totalAmount decimal.Decimal
	var totalClips int

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		clips, err := f.clipRepo.ListApprovedInPeriod(txCtx, periodStart, periodEnd)
		if err != nil {
			return err
		}

		groups := groupByClipper(clips)
		if len(groups) == 0 {
			return ErrNoEligibleClips
		}

		batch = models.PayoutBatch{
			UUID:        uuid.New(),
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Status:      models.PayoutBatchStatusDraft,
		}
		if err := f.batchRepo.Save(txCtx, &batch); err != nil {
			return err
		}

		totalAmount = decimal.Zero
		totalClips = 0
		for _, group := range groups {
			result, err := f.processClipperGroup(txCtx, &batch, group, payoutSettings, tierSettings)
			if err != nil {
				return err
			}
			if result == nil {
				continue
			}
			totalAmount = totalAmount.Add(result.Amount)
			totalClips += result.ClipsCount
		}

		return f.batchRepo.UpdateTotals(txCtx, batch.ID, totalAmount, totalClips)
	})
	if err != nil {
		if IsNoEligibleClips(err) {
			return nil, NewBusinessError("NO_ELIGIBLE_CLIPS", "No eligible clips in period", ErrNoEligibleClips)
		}

		errMsg := fmt.Sprintf("Payout batch generation failed: %s", err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionPayoutBatchGenerated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("BATCH_GENERATION_FAILED", "Payout batch generation failed", err)
	}

	msg := fmt.Sprintf("Payout batch generated: %s, total %s across %d clips", batch.UUID.String(), totalAmount.StringFixed(2), totalClips)
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionPayoutBatchGenerated, msg, true, nil, metadata)

	return &dto.GeneratePayoutBatchResponse{
		Message:     "Payout batch generated successfully",
		BatchID:     batch.ID,
		BatchUUID:   batch.UUID.String(),
		TotalAmount: totalAmount.StringFixed(2),
		TotalClips:  totalClips,
		CreatedAt:   batch.CreatedAt.Format(time.RFC3339),
	}, nil
}

// clipperGroup is the per-clipper slice of period clips
type clipperGroup struct {
	clipperID uint
	clips     []*models.Clip
}

// groupByClipper buckets clips per clipper in selection order. Orphaned clips
// without a clipper cannot be paid and are dropped.
func groupByClipper(clips []*models.Clip) []clipperGroup {
	index := make(map[uint]int)
	groups := make([]clipperGroup, 0)
	for _, clip := range clips {
		if clip.ClipperID == nil {
			continue
		}
		id := *clip.ClipperID
		pos, ok := index[id]
		if !ok {
			pos = len(groups)
			index[id] = pos
			groups = append(groups, clipperGroup{clipperID: id})
		}
		groups[pos].clips = append(groups[pos].clips, clip)
	}
	return groups
}

// processClipperGroup computes and persists one clipper's payouts. It returns
// nil when every clip fell below the minimum view gate, in which case no
// payout row is created and no clip is touched.
func (f *PayoutFlowImpl) processClipperGroup(ctx context.Context, batch *models.PayoutBatch, group clipperGroup, payoutSettings PayoutSettings, tierSettings TierSettings) (*models.ClipperPayout, error) {
	tier := models.ClipperTierEntry
	if group.clips[0].Clipper != nil {
		tier = group.clips[0].Clipper.Tier
	}
	tierRate := tierSettings.RateFor(tier)

	groupViews := int64(0)
	groupAmount := decimal.Zero
	groupBonus := decimal.Zero

	type paidClip struct {
		id     uint
		amount decimal.Decimal
	}
	paid := make([]paidClip, 0, len(group.clips))

	for _, clip := range group.clips {
		groupViews += clip.Views

		if clip.Views < payoutSettings.MinViewsForPayout {
			// Stays approved; may qualify in a later batch
			continue
		}

		effectiveRate := tierRate
		perClip := false
		if clip.Campaign != nil {
			if rate, flat, ok := clip.Campaign.RateForTier(tier); ok {
				effectiveRate = rate
				perClip = flat
			}
		}

		var payout decimal.Decimal
		if perClip {
			payout = effectiveRate
		} else {
			// Truncation, not rounding: fractional thousands earn nothing
			paidThousands := clip.Views / 1000
			payout = decimal.NewFromInt(paidThousands).Mul(effectiveRate)
		}

		bonus := decimal.Zero
		if clip.Views >= payoutSettings.BonusThresholdViews {
			bonus = payout.Mul(payoutSettings.BonusMultiplier.Sub(decimal.NewFromInt(1)))
			payout = payout.Add(bonus)
		}

		if clip.Campaign != nil && clip.Campaign.MaxPayoutPerClip.IsPositive() && payout.GreaterThan(clip.Campaign.MaxPayoutPerClip) {
			// The cap eats the bonus first; only the bonus that survives
			// the clamp is reported
			clampedOff := payout.Sub(clip.Campaign.MaxPayoutPerClip)
			bonus = decimal.Max(bonus.Sub(clampedOff), decimal.Zero)
			payout = clip.Campaign.MaxPayoutPerClip
		}
		groupBonus = groupBonus.Add(bonus)

		payout = payout.Round(2)
		groupAmount = groupAmount.Add(payout)
		paid = append(paid, paidClip{id: clip.ID, amount: payout})
	}

	if !groupAmount.IsPositive() {
		return nil, nil
	}

	for _, p := range paid {
		if err := f.clipRepo.MarkPaid(ctx, p.id, p.amount, batch.ID); err != nil {
			return nil, err
		}
	}

	payout := &models.ClipperPayout{
		UUID:          uuid.New(),
		PayoutBatchID: batch.ID,
		ClipperID:     group.clipperID,
		TotalViews:    groupViews,
		ClipsCount:    len(group.clips),
		Amount:        groupAmount.Round(2),
		BonusAmount:   groupBonus.Round(2),
		Status:        models.ClipperPayoutStatusPending,
	}
	if err := f.payoutRepo.Save(ctx, payout); err != nil {
		return nil, err
	}

	return payout, nil
}

func (f *PayoutFlowImpl) GetBatch(ctx context.Context, batchUUID string) (*dto.GetPayoutBatchResponse, error) {
	batch, err := f.batchRepo.ByUUID(ctx, batchUUID)
	if err != nil {
		return nil, NewBusinessError("BATCH_LOOKUP_FAILED", "Failed to lookup batch", err)
	}
	if batch == nil {
		return nil, NewBusinessError("BATCH_NOT_FOUND", "Payout batch not found", ErrBatchNotFound)
	}

	payouts, err := f.payoutRepo.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClipperPayoutItem, 0, len(payouts))
	for _, payout := range payouts {
		items = append(items, toClipperPayoutItem(payout))
	}

	return &dto.GetPayoutBatchResponse{
		Message: "Payout batch retrieved",
		Batch:   toPayoutBatchItem(batch),
		Payouts: items,
	}, nil
}

func (f *PayoutFlowImpl) ListBatches(ctx context.Context, page, pageSize int) (*dto.ListPayoutBatchesResponse, error) {
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

	total, err := f.batchRepo.Count(ctx, models.PayoutBatchFilter{})
	if err != nil {
		return nil, err
	}

	batches, err := f.batchRepo.ByFilter(ctx, models.PayoutBatchFilter{}, "created_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PayoutBatchItem, 0, len(batches))
	for _, batch := range batches {
		items = append(items, toPayoutBatchItem(batch))
	}

	return &dto.ListPayoutBatchesResponse{
		Message: "Payout batches retrieved",
		Items:   items,
		Total:   total,
	}, nil
}

func toPayoutBatchItem(batch *models.PayoutBatch) dto.PayoutBatchItem {
	item := dto.PayoutBatchItem{
		ID:          batch.ID,
		UUID:        batch.UUID.String(),
		PeriodStart: batch.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   batch.PeriodEnd.Format("2006-01-02"),
		TotalAmount: batch.TotalAmount.StringFixed(2),
		ClipsCount:  batch.ClipsCount,
		Status:      string(batch.Status),
		CreatedAt:   batch.CreatedAt.Format(time.RFC3339),
	}
	if batch.ProcessedAt != nil {
		processedAt := batch.ProcessedAt.Format(time.RFC3339)
		item.ProcessedAt = &processedAt
	}
	return item
}

func toClipperPayoutItem(payout *models.ClipperPayout) dto.ClipperPayoutItem {
	item := dto.ClipperPayoutItem{
		ID:          payout.ID,
		UUID:        payout.UUID.String(),
		TotalViews:  payout.TotalViews,
		ClipsCount:  payout.ClipsCount,
		Amount:      payout.Amount.StringFixed(2),
		BonusAmount: payout.BonusAmount.StringFixed(2),
		Status:      string(payout.Status),
	}
	if payout.Clipper != nil {
		item.ClipperName = payout.Clipper.Name
	}
	if payout.PaidAt != nil {
		paidAt := payout.PaidAt.Format(time.RFC3339)
		item.PaidAt = &paidAt
	}
	return item
}
