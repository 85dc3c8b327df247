package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CampaignStatus represents the status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// Campaign represents a brand commission that clippers submit clips against.
//
// A non-zero campaign rate overrides the clipper's tier-based platform rate
// for clips attributed to the campaign; zero or unset defers to the tier
// rate. Tier1/Tier2 rates are $ per 1000 views, Tier3FixedRate is a flat $
// per clip.
type Campaign struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_campaigns_uuid" json:"uuid"`
	ClientID uint      `gorm:"not null;index:idx_campaigns_client_id" json:"client_id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	Tier1CpmRate   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tier1_cpm_rate"`
	Tier2CpmRate   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tier2_cpm_rate"`
	Tier3FixedRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tier3_fixed_rate"`

	// MaxPayoutPerClip caps a single clip's final payout when non-zero
	MaxPayoutPerClip decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"max_payout_per_clip"`

	Budget       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"budget"`
	RequiredTags pq.StringArray  `gorm:"type:text[]" json:"required_tags,omitempty"`

	Status    CampaignStatus `gorm:"type:campaign_status;not null;default:'draft';index:idx_campaigns_status" json:"status"`
	StartsAt  *time.Time     `json:"starts_at,omitempty"`
	EndsAt    *time.Time     `json:"ends_at,omitempty"`
	CreatedAt time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_campaigns_created_at" json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Clips  []Clip  `gorm:"foreignKey:CampaignID" json:"clips,omitempty"`
}

// TableName returns the table name for the model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate is called before creating a new record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Campaign) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// AcceptsSubmissions reports whether clippers may submit new clips
func (c *Campaign) AcceptsSubmissions() bool {
	return c.Status == CampaignStatusActive
}

// CanTransitionTo checks if the campaign can transition to the given status
func (c *Campaign) CanTransitionTo(newStatus CampaignStatus) bool {
	switch c.Status {
	case CampaignStatusDraft:
		return newStatus == CampaignStatusActive
	case CampaignStatusActive:
		return newStatus == CampaignStatusPaused || newStatus == CampaignStatusCompleted
	case CampaignStatusPaused:
		return newStatus == CampaignStatusActive || newStatus == CampaignStatusCompleted
	default:
		return false
	}
}

// RateForTier resolves the campaign override rate for a clipper tier.
// ok is false when the campaign defines no override for the tier (the
// platform tier rate applies). perClip is true when the resolved rate is a
// flat per-clip amount rather than $ per 1000 views.
func (c *Campaign) RateForTier(tier ClipperTier) (rate decimal.Decimal, perClip bool, ok bool) {
	switch tier {
	case ClipperTierEntry:
		if c.Tier1CpmRate.IsPositive() {
			return c.Tier1CpmRate, false, true
		}
	case ClipperTierApproved:
		if c.Tier2CpmRate.IsPositive() {
			return c.Tier2CpmRate, false, true
		}
	case ClipperTierCore:
		if c.Tier3FixedRate.IsPositive() {
			return c.Tier3FixedRate, true, true
		}
	}
	return decimal.Zero, false, false
}

// CampaignFilter represents filter criteria for campaigns
type CampaignFilter struct {
	ID            *uint           `json:"id,omitempty"`
	UUID          *uuid.UUID      `json:"uuid,omitempty"`
	ClientID      *uint           `json:"client_id,omitempty"`
	Status        *CampaignStatus `json:"status,omitempty"`
	Name          *string         `json:"name,omitempty"`
	CreatedAfter  *time.Time      `json:"created_after,omitempty"`
	CreatedBefore *time.Time      `json:"created_before,omitempty"`
}
