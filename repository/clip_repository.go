package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClipRepositoryImpl implements the ClipRepository interface
type ClipRepositoryImpl struct {
	*BaseRepository[models.Clip, models.ClipFilter]
}

// NewClipRepository creates a new clip repository
func NewClipRepository(db *gorm.DB) ClipRepository {
	return &ClipRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Clip, models.ClipFilter](db),
	}
}

// ByID retrieves a clip by ID with its campaign and clipper preloaded
func (r *ClipRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Clip, error) {
	db := r.getDB(ctx)

	var clip models.Clip
	err := db.Preload("Campaign").
		Preload("Clipper").
		Last(&clip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &clip, nil
}

// ByUUID retrieves a clip by UUID
func (r *ClipRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Clip, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.ClipFilter{UUID: &parsedUUID}
	clips, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(clips) == 0 {
		return nil, nil
	}

	return clips[0], nil
}

// BySubmissionURL retrieves the earliest clip with an exact submission URL match
func (r *ClipRepositoryImpl) BySubmissionURL(ctx context.Context, url string) (*models.Clip, error) {
	filter := models.ClipFilter{SubmissionURL: &url}
	clips, err := r.ByFilter(ctx, filter, "created_at ASC, id ASC", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(clips) == 0 {
		return nil, nil
	}

	return clips[0], nil
}

// ListApprovedInPeriod retrieves approved clips created within the inclusive
// period boundaries, ordered for deterministic grouping
func (r *ClipRepositoryImpl) ListApprovedInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]*models.Clip, error) {
	status := models.ClipStatusApproved
	filter := models.ClipFilter{
		Status:            &status,
		CreatedAtOrAfter:  &periodStart,
		CreatedAtOrBefore: &periodEnd,
	}
	return r.ByFilter(ctx, filter, "clipper_id ASC, created_at ASC, id ASC", 0, 0)
}

// ListStaleForActiveCampaigns retrieves clips eligible for a metrics refresh:
// attached to an active campaign, carrying an external post id, still in a
// refreshable status, and with metrics missing or older than staleBefore
func (r *ClipRepositoryImpl) ListStaleForActiveCampaigns(ctx context.Context, staleBefore time.Time) ([]*models.Clip, error) {
	db := r.getDB(ctx)

	var clips []*models.Clip
	err := db.Joins("JOIN campaigns ON campaigns.id = clips.campaign_id").
		Where("campaigns.status = ?", models.CampaignStatusActive).
		Where("clips.external_post_id IS NOT NULL").
		Where("clips.status IN ?", []models.ClipStatus{models.ClipStatusPending, models.ClipStatusApproved}).
		Where("clips.metrics_updated_at IS NULL OR clips.metrics_updated_at < ?", staleBefore).
		Preload("Campaign").
		Order("clips.id ASC").
		Find(&clips).Error
	if err != nil {
		return nil, err
	}

	return clips, nil
}

// ListByBatch retrieves all clips referencing a payout batch
func (r *ClipRepositoryImpl) ListByBatch(ctx context.Context, batchID uint) ([]*models.Clip, error) {
	filter := models.ClipFilter{PayoutBatchID: &batchID}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

// Update updates a clip
func (r *ClipRepositoryImpl) Update(ctx context.Context, clip models.Clip) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	now := utils.UTCNow()
	clip.UpdatedAt = &now

	err = db.Save(&clip).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdateStatus updates only the status of a clip
func (r *ClipRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.ClipStatus) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clip{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
}

// MarkPaid stamps a clip with its computed payout amount, the owning batch,
// and the paid status in one write
func (r *ClipRepositoryImpl) MarkPaid(ctx context.Context, id uint, amount decimal.Decimal, batchID uint) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clip{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payout_amount":   amount,
			"payout_batch_id": batchID,
			"status":          models.ClipStatusPaid,
			"updated_at":      utils.UTCNow(),
		}).Error
}

// MarkDuplicate flags a clip as a duplicate of the canonical original
func (r *ClipRepositoryImpl) MarkDuplicate(ctx context.Context, id uint, originalID uint) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clip{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_duplicate":         true,
			"duplicate_of_clip_id": originalID,
			"updated_at":           utils.UTCNow(),
		}).Error
}

// UpdateMetrics overwrites a clip's engagement counters and tag compliance
func (r *ClipRepositoryImpl) UpdateMetrics(ctx context.Context, id uint, m ClipMetricsUpdate) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clip{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"views":              m.Views,
			"likes":              m.Likes,
			"comments":           m.Comments,
			"shares":             m.Shares,
			"retweets":           m.Retweets,
			"impressions":        m.Impressions,
			"tags_found":         pq.StringArray(m.TagsFound),
			"tags_missing":       pq.StringArray(m.TagsMissing),
			"metrics_updated_at": m.UpdatedAt,
			"updated_at":         utils.UTCNow(),
		}).Error
}

// RevertBatchClips clears payout fields on every clip referencing the batch
// and resets their status to approved
func (r *ClipRepositoryImpl) RevertBatchClips(ctx context.Context, batchID uint) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clip{}).
		Where("payout_batch_id = ?", batchID).
		Updates(map[string]any{
			"payout_amount":   nil,
			"payout_batch_id": nil,
			"status":          models.ClipStatusApproved,
			"updated_at":      utils.UTCNow(),
		}).Error
}

// ByFilter retrieves clips based on filter criteria
func (r *ClipRepositoryImpl) ByFilter(ctx context.Context, filter models.ClipFilter, orderBy string, limit, offset int) ([]*models.Clip, error) {
	db := r.getDB(ctx)

	var clips []*models.Clip
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	query = query.Preload("Campaign").
		Preload("Clipper")

	err := query.Find(&clips).Error
	if err != nil {
		return nil, err
	}

	return clips, nil
}

// Count returns the number of clips matching the filter
func (r *ClipRepositoryImpl) Count(ctx context.Context, filter models.ClipFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var clip models.Clip
	query := r.applyFilter(db.Model(&clip), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any clip matching the filter exists
func (r *ClipRepositoryImpl) Exists(ctx context.Context, filter models.ClipFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ClipRepositoryImpl) applyFilter(db *gorm.DB, filter models.ClipFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CampaignID != nil {
		db = db.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.ClipperID != nil {
		db = db.Where("clipper_id = ?", *filter.ClipperID)
	}
	if filter.Platform != nil {
		db = db.Where("platform = ?", *filter.Platform)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.SubmissionURL != nil {
		db = db.Where("submission_url = ?", *filter.SubmissionURL)
	}
	if filter.PayoutBatchID != nil {
		db = db.Where("payout_batch_id = ?", *filter.PayoutBatchID)
	}
	if filter.IsDuplicate != nil {
		db = db.Where("is_duplicate = ?", *filter.IsDuplicate)
	}
	if filter.CampaignStatus != nil {
		db = db.Joins("JOIN campaigns ON campaigns.id = clips.campaign_id").
			Where("campaigns.status = ?", *filter.CampaignStatus)
	}
	if filter.HasExternalPostID != nil {
		if *filter.HasExternalPostID {
			db = db.Where("external_post_id IS NOT NULL")
		} else {
			db = db.Where("external_post_id IS NULL")
		}
	}
	if filter.MinViews != nil {
		db = db.Where("views >= ?", *filter.MinViews)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.CreatedAtOrAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAtOrAfter)
	}
	if filter.CreatedAtOrBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedAtOrBefore)
	}
	if filter.MetricsStaleBefore != nil {
		db = db.Where("metrics_updated_at IS NULL OR metrics_updated_at < ?", *filter.MetricsStaleBefore)
	}

	return db
}
