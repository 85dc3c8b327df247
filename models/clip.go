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

// ClipStatus represents the review/payout status of a clip
type ClipStatus string

const (
	ClipStatusPending  ClipStatus = "pending"
	ClipStatusApproved ClipStatus = "approved"
	ClipStatusRejected ClipStatus = "rejected"
	ClipStatusPaid     ClipStatus = "paid"
)

// String returns the string representation of the status
func (s ClipStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ClipStatus) Valid() bool {
	switch s {
	case ClipStatusPending, ClipStatusApproved, ClipStatusRejected, ClipStatusPaid:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ClipStatus
func (s *ClipStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ClipStatus(v)
	case []byte:
		*s = ClipStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClipStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ClipStatus
func (s ClipStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ClipStatus: %s", s)
	}
	return string(s), nil
}

// ClipPlatform represents the social platform a clip was published on
type ClipPlatform string

const (
	ClipPlatformTikTok    ClipPlatform = "tiktok"
	ClipPlatformInstagram ClipPlatform = "instagram"
	ClipPlatformYouTube   ClipPlatform = "youtube"
	ClipPlatformTwitter   ClipPlatform = "twitter"
)

// Valid checks if the platform is valid
func (p ClipPlatform) Valid() bool {
	switch p {
	case ClipPlatformTikTok, ClipPlatformInstagram, ClipPlatformYouTube, ClipPlatformTwitter:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ClipPlatform
func (p *ClipPlatform) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*p = ClipPlatform(v)
	case []byte:
		*p = ClipPlatform(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClipPlatform", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ClipPlatform
func (p ClipPlatform) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid ClipPlatform: %s", p)
	}
	return string(p), nil
}

// Clip represents one submitted piece of content.
//
// CreatedAt doubles as the payout batching window boundary and as the
// tie-break for duplicate detection, so it is never rewritten after insert.
type Clip struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uk_clips_uuid" json:"uuid"`
	CampaignID *uint        `gorm:"index:idx_clips_campaign_id" json:"campaign_id,omitempty"`
	ClipperID  *uint        `gorm:"index:idx_clips_clipper_id" json:"clipper_id,omitempty"`
	Platform   ClipPlatform `gorm:"type:clip_platform;not null" json:"platform"`

	// SubmissionURL uniqueness is enforced at submission time, not by the
	// schema; later duplicates are flagged rather than rejected.
	SubmissionURL  string  `gorm:"type:text;not null;index:idx_clips_submission_url" json:"submission_url"`
	ExternalPostID *string `gorm:"size:64;index:idx_clips_external_post_id" json:"external_post_id,omitempty"`

	Views       int64 `gorm:"not null;default:0" json:"views"`
	Likes       int64 `gorm:"not null;default:0" json:"likes"`
	Comments    int64 `gorm:"not null;default:0" json:"comments"`
	Shares      int64 `gorm:"not null;default:0" json:"shares"`
	Retweets    int64 `gorm:"not null;default:0" json:"retweets"`
	Impressions int64 `gorm:"not null;default:0" json:"impressions"`

	Status        ClipStatus       `gorm:"type:clip_status;not null;default:'pending';index:idx_clips_status" json:"status"`
	PayoutAmount  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"payout_amount,omitempty"`
	PayoutBatchID *uint            `gorm:"index:idx_clips_payout_batch_id" json:"payout_batch_id,omitempty"`

	IsDuplicate      bool  `gorm:"not null;default:false;index:idx_clips_is_duplicate" json:"is_duplicate"`
	DuplicateOfClipID *uint `gorm:"index:idx_clips_duplicate_of" json:"duplicate_of_clip_id,omitempty"`

	TagsFound        pq.StringArray `gorm:"type:text[]" json:"tags_found,omitempty"`
	TagsMissing      pq.StringArray `gorm:"type:text[]" json:"tags_missing,omitempty"`
	MetricsUpdatedAt *time.Time     `gorm:"index:idx_clips_metrics_updated_at" json:"metrics_updated_at,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_clips_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID" json:"campaign,omitempty"`
	Clipper  *Clipper  `gorm:"foreignKey:ClipperID;references:ID" json:"clipper,omitempty"`
}

// TableName returns the table name for the model
func (Clip) TableName() string {
	return "clips"
}

// BeforeCreate is called before creating a new record
func (c *Clip) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ClipStatusPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Clip) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// CanTransitionTo checks if the clip can transition to the given status.
// Approved clips become paid only through batch generation; paid clips
// revert to approved only through draft-batch deletion.
func (c *Clip) CanTransitionTo(newStatus ClipStatus) bool {
	switch c.Status {
	case ClipStatusPending:
		return newStatus == ClipStatusApproved || newStatus == ClipStatusRejected
	case ClipStatusApproved:
		return newStatus == ClipStatusPaid
	case ClipStatusPaid:
		return newStatus == ClipStatusApproved
	default:
		return false
	}
}

// IsReviewable reports whether an admin may approve or reject the clip
func (c *Clip) IsReviewable() bool {
	return c.Status == ClipStatusPending
}

// ClipFilter represents filter criteria for clips
type ClipFilter struct {
	ID                *uint         `json:"id,omitempty"`
	UUID              *uuid.UUID    `json:"uuid,omitempty"`
	CampaignID        *uint         `json:"campaign_id,omitempty"`
	ClipperID         *uint         `json:"clipper_id,omitempty"`
	Platform          *ClipPlatform `json:"platform,omitempty"`
	Status            *ClipStatus   `json:"status,omitempty"`
	SubmissionURL     *string       `json:"submission_url,omitempty"`
	PayoutBatchID     *uint         `json:"payout_batch_id,omitempty"`
	IsDuplicate       *bool         `json:"is_duplicate,omitempty"`
	HasExternalPostID *bool         `json:"has_external_post_id,omitempty"`
	CampaignStatus    *CampaignStatus `json:"campaign_status,omitempty"`
	MinViews          *int64        `json:"min_views,omitempty"`
	CreatedAfter      *time.Time    `json:"created_after,omitempty"`
	CreatedBefore     *time.Time    `json:"created_before,omitempty"`
	// CreatedAtOrAfter/CreatedAtOrBefore are inclusive boundaries used by
	// payout period selection.
	CreatedAtOrAfter   *time.Time `json:"created_at_or_after,omitempty"`
	CreatedAtOrBefore  *time.Time `json:"created_at_or_before,omitempty"`
	MetricsStaleBefore *time.Time `json:"metrics_stale_before,omitempty"`
}
