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

// PayoutBatchStatus represents the lifecycle status of a payout batch
type PayoutBatchStatus string

const (
	PayoutBatchStatusDraft      PayoutBatchStatus = "draft"
	PayoutBatchStatusProcessing PayoutBatchStatus = "processing"
	PayoutBatchStatusCompleted  PayoutBatchStatus = "completed"
	PayoutBatchStatusCancelled  PayoutBatchStatus = "cancelled"
)

// String returns the string representation of the status
func (s PayoutBatchStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s PayoutBatchStatus) Valid() bool {
	switch s {
	case PayoutBatchStatusDraft, PayoutBatchStatusProcessing,
		PayoutBatchStatusCompleted, PayoutBatchStatusCancelled:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PayoutBatchStatus
func (s *PayoutBatchStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = PayoutBatchStatus(v)
	case []byte:
		*s = PayoutBatchStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PayoutBatchStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for PayoutBatchStatus
func (s PayoutBatchStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid PayoutBatchStatus: %s", s)
	}
	return string(s), nil
}

// PayoutBatch is the unit of "paid all at once" and of reversible deletion.
// Period boundaries are inclusive on clip creation timestamps and immutable
// after creation.
type PayoutBatch struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_payout_batches_uuid" json:"uuid"`

	PeriodStart time.Time `gorm:"not null;index:idx_payout_batches_period_start" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null;index:idx_payout_batches_period_end" json:"period_end"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	ClipsCount  int             `gorm:"not null;default:0" json:"clips_count"`

	Status      PayoutBatchStatus `gorm:"type:payout_batch_status;not null;default:'draft';index:idx_payout_batches_status" json:"status"`
	ProcessedBy *uint             `json:"processed_by,omitempty"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_payout_batches_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	ClipperPayouts []ClipperPayout `gorm:"foreignKey:PayoutBatchID" json:"clipper_payouts,omitempty"`
	Clips          []Clip          `gorm:"foreignKey:PayoutBatchID" json:"clips,omitempty"`
}

// TableName returns the table name for the model
func (PayoutBatch) TableName() string {
	return "payout_batches"
}

// BeforeCreate is called before creating a new record
func (b *PayoutBatch) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	if b.Status == "" {
		b.Status = PayoutBatchStatusDraft
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (b *PayoutBatch) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	b.UpdatedAt = &now
	return nil
}

// IsDeletable reports whether the batch may be deleted or cancelled.
// Only draft batches are reversible; a processing or completed batch may
// have disbursed payouts behind it.
func (b *PayoutBatch) IsDeletable() bool {
	return b.Status == PayoutBatchStatusDraft
}

// CanTransitionTo checks if the batch can transition to the given status
func (b *PayoutBatch) CanTransitionTo(newStatus PayoutBatchStatus) bool {
	switch b.Status {
	case PayoutBatchStatusDraft:
		return newStatus == PayoutBatchStatusProcessing || newStatus == PayoutBatchStatusCancelled
	case PayoutBatchStatusProcessing:
		return newStatus == PayoutBatchStatusCompleted
	default:
		return false
	}
}

// PayoutBatchFilter represents filter criteria for payout batches
type PayoutBatchFilter struct {
	ID            *uint              `json:"id,omitempty"`
	UUID          *uuid.UUID         `json:"uuid,omitempty"`
	Status        *PayoutBatchStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}
