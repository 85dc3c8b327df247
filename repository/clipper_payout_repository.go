package repository

import (
	"context"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClipperPayoutRepositoryImpl implements the ClipperPayoutRepository interface
type ClipperPayoutRepositoryImpl struct {
	*BaseRepository[models.ClipperPayout, models.ClipperPayoutFilter]
}

// NewClipperPayoutRepository creates a new clipper payout repository
func NewClipperPayoutRepository(db *gorm.DB) ClipperPayoutRepository {
	return &ClipperPayoutRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ClipperPayout, models.ClipperPayoutFilter](db),
	}
}

// ListByBatch retrieves all payouts belonging to a batch
func (r *ClipperPayoutRepositoryImpl) ListByBatch(ctx context.Context, batchID uint) ([]*models.ClipperPayout, error) {
	filter := models.ClipperPayoutFilter{PayoutBatchID: &batchID}
	return r.ByFilter(ctx, filter, "clipper_id ASC", 0, 0)
}

// ListPendingByBatch retrieves the still-pending payouts of a batch
func (r *ClipperPayoutRepositoryImpl) ListPendingByBatch(ctx context.Context, batchID uint) ([]*models.ClipperPayout, error) {
	status := models.ClipperPayoutStatusPending
	filter := models.ClipperPayoutFilter{PayoutBatchID: &batchID, Status: &status}
	return r.ByFilter(ctx, filter, "clipper_id ASC", 0, 0)
}

// MarkPaidIfPending flips a payout from pending to paid. The status guard in
// the WHERE clause makes repeated calls lose the transition, so earnings are
// only ever credited once per payout.
func (r *ClipperPayoutRepositoryImpl) MarkPaidIfPending(ctx context.Context, id uint, paidAt time.Time) (bool, error) {
	db := r.getDB(ctx)

	result := db.Model(&models.ClipperPayout{}).
		Where("id = ? AND status = ?", id, models.ClipperPayoutStatusPending).
		Updates(map[string]any{
			"status":     models.ClipperPayoutStatusPaid,
			"paid_at":    paidAt,
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// SumPaidAmountByClipper totals the paid amounts ever credited to a clipper
func (r *ClipperPayoutRepositoryImpl) SumPaidAmountByClipper(ctx context.Context, clipperID uint) (decimal.Decimal, error) {
	db := r.getDB(ctx)

	var total decimal.NullDecimal
	err := db.Model(&models.ClipperPayout{}).
		Where("clipper_id = ? AND status = ?", clipperID, models.ClipperPayoutStatusPaid).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

// DeleteByBatch removes every payout row belonging to a batch
func (r *ClipperPayoutRepositoryImpl) DeleteByBatch(ctx context.Context, batchID uint) error {
	db := r.getDB(ctx)

	return db.Where("payout_batch_id = ?", batchID).
		Delete(&models.ClipperPayout{}).Error
}

// ByFilter retrieves payouts based on filter criteria
func (r *ClipperPayoutRepositoryImpl) ByFilter(ctx context.Context, filter models.ClipperPayoutFilter, orderBy string, limit, offset int) ([]*models.ClipperPayout, error) {
	db := r.getDB(ctx)

	var payouts []*models.ClipperPayout
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

	query = query.Preload("Clipper")

	err := query.Find(&payouts).Error
	if err != nil {
		return nil, err
	}

	return payouts, nil
}

// Count returns the number of payouts matching the filter
func (r *ClipperPayoutRepositoryImpl) Count(ctx context.Context, filter models.ClipperPayoutFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var payout models.ClipperPayout
	query := r.applyFilter(db.Model(&payout), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any payout matching the filter exists
func (r *ClipperPayoutRepositoryImpl) Exists(ctx context.Context, filter models.ClipperPayoutFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ClipperPayoutRepositoryImpl) applyFilter(db *gorm.DB, filter models.ClipperPayoutFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.PayoutBatchID != nil {
		db = db.Where("payout_batch_id = ?", *filter.PayoutBatchID)
	}
	if filter.ClipperID != nil {
		db = db.Where("clipper_id = ?", *filter.ClipperID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
