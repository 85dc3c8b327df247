package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClipperTier determines the platform pay rate when the campaign defines no override
type ClipperTier string

const (
	ClipperTierEntry    ClipperTier = "entry"
	ClipperTierApproved ClipperTier = "approved"
	ClipperTierCore     ClipperTier = "core"
)

// Valid checks if the tier is valid
func (t ClipperTier) Valid() bool {
	switch t {
	case ClipperTierEntry, ClipperTierApproved, ClipperTierCore:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ClipperTier
func (t *ClipperTier) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = ClipperTier(v)
	case []byte:
		*t = ClipperTier(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClipperTier", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ClipperTier
func (t ClipperTier) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid ClipperTier: %s", t)
	}
	return string(t), nil
}

// ClipperStatus represents the account status of a clipper
type ClipperStatus string

const (
	ClipperStatusPending   ClipperStatus = "pending"
	ClipperStatusActive    ClipperStatus = "active"
	ClipperStatusSuspended ClipperStatus = "suspended"
)

// Valid checks if the status is valid
func (s ClipperStatus) Valid() bool {
	switch s {
	case ClipperStatusPending, ClipperStatusActive, ClipperStatusSuspended:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ClipperStatus
func (s *ClipperStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ClipperStatus(v)
	case []byte:
		*s = ClipperStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClipperStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ClipperStatus
func (s ClipperStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ClipperStatus: %s", s)
	}
	return string(s), nil
}

// Clipper represents a creator account that submits clips.
//
// TotalEarnings is increment-only: it is bumped exactly once when a clipper
// payout transitions to paid, and never recomputed, so at any quiescent
// point it equals the sum of that clipper's paid payout amounts.
type Clipper struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uk_clippers_uuid" json:"uuid"`
	Name     string      `gorm:"size:255;not null" json:"name"`
	Email    string      `gorm:"size:255;not null;uniqueIndex:uk_clippers_email" json:"email"`
	Tier     ClipperTier `gorm:"type:clipper_tier;not null;default:'entry';index:idx_clippers_tier" json:"tier"`

	TotalViews     int64           `gorm:"not null;default:0" json:"total_views"`
	TotalEarnings  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_earnings"`
	SubmittedClips int             `gorm:"not null;default:0" json:"submitted_clips"`
	ApprovedClips  int             `gorm:"not null;default:0" json:"approved_clips"`

	Status    ClipperStatus `gorm:"type:clipper_status;not null;default:'pending';index:idx_clippers_status" json:"status"`
	CreatedAt time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`

	// Relations
	Clips          []Clip          `gorm:"foreignKey:ClipperID" json:"clips,omitempty"`
	ClipperPayouts []ClipperPayout `gorm:"foreignKey:ClipperID" json:"clipper_payouts,omitempty"`
}

// TableName returns the table name for the model
func (Clipper) TableName() string {
	return "clippers"
}

// BeforeCreate is called before creating a new record
func (c *Clipper) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Tier == "" {
		c.Tier = ClipperTierEntry
	}
	if c.Status == "" {
		c.Status = ClipperStatusPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Clipper) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// CanSubmit reports whether the clipper may submit new clips
func (c *Clipper) CanSubmit() bool {
	return c.Status == ClipperStatusActive
}

// ClipperFilter represents filter criteria for clippers
type ClipperFilter struct {
	ID            *uint          `json:"id,omitempty"`
	UUID          *uuid.UUID     `json:"uuid,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Tier          *ClipperTier   `json:"tier,omitempty"`
	Status        *ClipperStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time     `json:"created_after,omitempty"`
	CreatedBefore *time.Time     `json:"created_before,omitempty"`
}
