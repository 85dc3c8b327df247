package repository

import (
	"context"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClipperRepositoryImpl implements the ClipperRepository interface
type ClipperRepositoryImpl struct {
	*BaseRepository[models.Clipper, models.ClipperFilter]
}

// NewClipperRepository creates a new clipper repository
func NewClipperRepository(db *gorm.DB) ClipperRepository {
	return &ClipperRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Clipper, models.ClipperFilter](db),
	}
}

// ByUUID retrieves a clipper by UUID
func (r *ClipperRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Clipper, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.ClipperFilter{UUID: &parsedUUID}
	clippers, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(clippers) == 0 {
		return nil, nil
	}

	return clippers[0], nil
}

// ByEmail retrieves a clipper by email
func (r *ClipperRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Clipper, error) {
	filter := models.ClipperFilter{Email: &email}
	clippers, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(clippers) == 0 {
		return nil, nil
	}

	return clippers[0], nil
}

// Update updates a clipper
func (r *ClipperRepositoryImpl) Update(ctx context.Context, clipper models.Clipper) error {
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
	clipper.UpdatedAt = &now

	err = db.Save(&clipper).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdateTier updates only the tier of a clipper
func (r *ClipperRepositoryImpl) UpdateTier(ctx context.Context, id uint, tier models.ClipperTier) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clipper{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"tier":       tier,
			"updated_at": utils.UTCNow(),
		}).Error
}

// IncrementEarnings adds amount to the clipper's lifetime earnings ledger.
// The increment is performed in SQL so concurrent paid-transitions never
// lose an update.
func (r *ClipperRepositoryImpl) IncrementEarnings(ctx context.Context, id uint, amount decimal.Decimal) error {
	db := r.getDB(ctx)

	return db.Model(&models.Clipper{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_earnings": gorm.Expr("total_earnings + ?", amount),
			"updated_at":     utils.UTCNow(),
		}).Error
}

// IncrementCounters bumps the submitted/approved clip counters
func (r *ClipperRepositoryImpl) IncrementCounters(ctx context.Context, id uint, submitted, approved int) error {
	db := r.getDB(ctx)

	updates := map[string]any{
		"updated_at": utils.UTCNow(),
	}
	if submitted != 0 {
		updates["submitted_clips"] = gorm.Expr("submitted_clips + ?", submitted)
	}
	if approved != 0 {
		updates["approved_clips"] = gorm.Expr("approved_clips + ?", approved)
	}

	return db.Model(&models.Clipper{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ByFilter retrieves clippers based on filter criteria
func (r *ClipperRepositoryImpl) ByFilter(ctx context.Context, filter models.ClipperFilter, orderBy string, limit, offset int) ([]*models.Clipper, error) {
	db := r.getDB(ctx)

	var clippers []*models.Clipper
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

	err := query.Find(&clippers).Error
	if err != nil {
		return nil, err
	}

	return clippers, nil
}

// Count returns the number of clippers matching the filter
func (r *ClipperRepositoryImpl) Count(ctx context.Context, filter models.ClipperFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var clipper models.Clipper
	query := r.applyFilter(db.Model(&clipper), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any clipper matching the filter exists
func (r *ClipperRepositoryImpl) Exists(ctx context.Context, filter models.ClipperFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ClipperRepositoryImpl) applyFilter(db *gorm.DB, filter models.ClipperFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.Tier != nil {
		db = db.Where("tier = ?", *filter.Tier)
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
