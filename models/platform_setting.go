package models

import (
	"encoding/json"
	"time"

	"github.com/cliphaus/cliphaus-platform/utils"
	"gorm.io/gorm"
)

// Well-known setting keys
const (
	SettingKeyPayout = "payout_settings"
	SettingKeyTiers  = "tier_settings"
)

// PlatformSetting is a generic key to JSON-value store for admin-editable
// configuration. The typed accessors live in the settings flow.
type PlatformSetting struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Key       string          `gorm:"size:128;not null;uniqueIndex:uk_platform_settings_key" json:"key"`
	Value     json.RawMessage `gorm:"type:jsonb;not null" json:"value"`
	CreatedAt time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// TableName returns the table name for the model
func (PlatformSetting) TableName() string {
	return "platform_settings"
}

// BeforeCreate is called before creating a new record
func (s *PlatformSetting) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (s *PlatformSetting) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	s.UpdatedAt = &now
	return nil
}

// PlatformSettingFilter represents filter criteria for platform settings
type PlatformSettingFilter struct {
	ID  *uint   `json:"id,omitempty"`
	Key *string `json:"key,omitempty"`
}
