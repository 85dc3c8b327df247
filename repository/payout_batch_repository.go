package repository

import (
	"context"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutBatchRepositoryImpl implements the PayoutBatchRepository interface
type PayoutBatchRepositoryImpl struct {
	*BaseRepository[models.PayoutBatch, models.PayoutBatchFilter]
}

// NewPayoutBatchRepository creates a new payout batch repository
func NewPayoutBatchRepository(db *gorm.DB) PayoutBatchRepository {
	return &PayoutBatchRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PayoutBatch, models.PayoutBatchFilter](db),
	}
}

// ByUUID retrieves a batch by UUID
func (r *PayoutBatchRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.PayoutBatch, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.PayoutBatchFilter{UUID: &parsedUUID}
	batches, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(batches) == 0 {
		return nil, nil
	}

	return batches[0], nil
}

// Update updates a batch
func (r *PayoutBatchRepositoryImpl) Update(ctx context.Context, batch models.PayoutBatch) error {
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
	batch.UpdatedAt = &now

	err = db.Save(&batch).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdateStatus updates only the status of a batch
func (r *PayoutBatchRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.PayoutBatchStatus) error {
	db := r.getDB(ctx)

	return db.Model(&models.PayoutBatch{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
}

// UpdateTotals finalizes the aggregate columns after generation
func (r *PayoutBatchRepositoryImpl) UpdateTotals(ctx context.Context, id uint, totalAmount decimal.Decimal, clipsCount int) error {
	db := r.getDB(ctx)

	return db.Model(&models.PayoutBatch{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_amount": totalAmount,
			"clips_count":  clipsCount,
			"updated_at":   utils.UTCNow(),
		}).Error
}

// Delete removes a batch row
func (r *PayoutBatchRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	return db.Delete(&models.PayoutBatch{}, id).Error
}

// ByFilter retrieves batches based on filter criteria
func (r *PayoutBatchRepositoryImpl) ByFilter(ctx context.Context, filter models.PayoutBatchFilter, orderBy string, limit, offset int) ([]*models.PayoutBatch, error) {
	db := r.getDB(ctx)

	var batches []*models.PayoutBatch
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

	err := query.Find(&batches).Error
	if err != nil {
		return nil, err
	}

	return batches, nil
}

// Count returns the number of batches matching the filter
func (r *PayoutBatchRepositoryImpl) Count(ctx context.Context, filter models.PayoutBatchFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var batch models.PayoutBatch
	query := r.applyFilter(db.Model(&batch), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any batch matching the filter exists
func (r *PayoutBatchRepositoryImpl) Exists(ctx context.Context, filter models.PayoutBatchFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PayoutBatchRepositoryImpl) applyFilter(db *gorm.DB, filter models.PayoutBatchFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
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
