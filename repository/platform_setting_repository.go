package repository

import (
	"context"
	"encoding/json"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlatformSettingRepositoryImpl implements the PlatformSettingRepository interface
type PlatformSettingRepositoryImpl struct {
	*BaseRepository[models.PlatformSetting, models.PlatformSettingFilter]
}

// NewPlatformSettingRepository creates a new platform setting repository
func NewPlatformSettingRepository(db *gorm.DB) PlatformSettingRepository {
	return &PlatformSettingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PlatformSetting, models.PlatformSettingFilter](db),
	}
}

// ByKey retrieves a setting by its unique key
func (r *PlatformSettingRepositoryImpl) ByKey(ctx context.Context, key string) (*models.PlatformSetting, error) {
	filter := models.PlatformSettingFilter{Key: &key}
	settings, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(settings) == 0 {
		return nil, nil
	}

	return settings[0], nil
}

// Upsert inserts or overwrites the JSON value stored under key
func (r *PlatformSettingRepositoryImpl) Upsert(ctx context.Context, key string, value []byte) error {
	db := r.getDB(ctx)

	now := utils.UTCNow()
	setting := models.PlatformSetting{
		Key:       key,
		Value:     json.RawMessage(value),
		CreatedAt: now,
		UpdatedAt: &now,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// ByFilter retrieves settings based on filter criteria
func (r *PlatformSettingRepositoryImpl) ByFilter(ctx context.Context, filter models.PlatformSettingFilter, orderBy string, limit, offset int) ([]*models.PlatformSetting, error) {
	db := r.getDB(ctx)

	var settings []*models.PlatformSetting
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

	err := query.Find(&settings).Error
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Count returns the number of settings matching the filter
func (r *PlatformSettingRepositoryImpl) Count(ctx context.Context, filter models.PlatformSettingFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var setting models.PlatformSetting
	query := r.applyFilter(db.Model(&setting), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any setting matching the filter exists
func (r *PlatformSettingRepositoryImpl) Exists(ctx context.Context, filter models.PlatformSettingFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PlatformSettingRepositoryImpl) applyFilter(db *gorm.DB, filter models.PlatformSettingFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Key != nil {
		db = db.Where("key = ?", *filter.Key)
	}

	return db
}
