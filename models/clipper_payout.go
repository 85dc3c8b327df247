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

// ClipperPayoutStatus represents the status of a clipper payout
type ClipperPayoutStatus string

const (
	ClipperPayoutStatusPending ClipperPayoutStatus = "pending"
	ClipperPayoutStatusPaid    ClipperPayoutStatus = "paid"
)

// Valid checks if the status is valid
func (s ClipperPayoutStatus) Valid() bool {
	switch s {
	case ClipperPayoutStatusPending, ClipperPayoutStatusPaid:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ClipperPayoutStatus
func (s *ClipperPayoutStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ClipperPayoutStatus(v)
	case []byte:
		*s = ClipperPayoutStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClipperPayoutStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ClipperPayoutStatus
func (s ClipperPayoutStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ClipperPayoutStatus: %s", s)
	}
	return string(s), nil
}

// ClipperPayout is one row per (batch, clipper) pair.
//
// Amount already includes BonusAmount; the bonus is tracked separately for
// reporting only, never charged on top.
type ClipperPayout struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_clipper_payouts_uuid" json:"uuid"`
	PayoutBatchID uint      `gorm:"not null;index:idx_clipper_payouts_batch_id" json:"payout_batch_id"`
	ClipperID     uint      `gorm:"not null;index:idx_clipper_payouts_clipper_id" json:"clipper_id"`

	TotalViews  int64           `gorm:"not null;default:0" json:"total_views"`
	ClipsCount  int             `gorm:"not null;default:0" json:"clips_count"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	BonusAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"bonus_amount"`

	Status ClipperPayoutStatus `gorm:"type:clipper_payout_status;not null;default:'pending';index:idx_clipper_payouts_status" json:"status"`
	PaidAt *time.Time          `json:"paid_at,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	PayoutBatch *PayoutBatch `gorm:"foreignKey:PayoutBatchID;references:ID" json:"payout_batch,omitempty"`
	Clipper     *Clipper     `gorm:"foreignKey:ClipperID;references:ID" json:"clipper,omitempty"`
}

// TableName returns the table name for the model
func (ClipperPayout) TableName() string {
	return "clipper_payouts"
}

// BeforeCreate is called before creating a new record
func (p *ClipperPayout) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ClipperPayoutStatusPending
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (p *ClipperPayout) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	p.UpdatedAt = &now
	return nil
}

// ClipperPayoutFilter represents filter criteria for clipper payouts
type ClipperPayoutFilter struct {
	ID            *uint                `json:"id,omitempty"`
	UUID          *uuid.UUID           `json:"uuid,omitempty"`
	PayoutBatchID *uint                `json:"payout_batch_id,omitempty"`
	ClipperID     *uint                `json:"clipper_id,omitempty"`
	Status        *ClipperPayoutStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time           `json:"created_after,omitempty"`
	CreatedBefore *time.Time           `json:"created_before,omitempty"`
}
