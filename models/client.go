package models

import (
	"time"

	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a brand that commissions campaigns
type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_clients_uuid" json:"uuid"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	CompanyName *string   `gorm:"size:255" json:"company_name,omitempty"`
	Email       string    `gorm:"size:255;not null;uniqueIndex:uk_clients_email" json:"email"`

	IsActive  *bool      `gorm:"default:true;index:idx_clients_is_active" json:"is_active"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Campaigns []Campaign `gorm:"foreignKey:ClientID" json:"campaigns,omitempty"`
}

// TableName returns the table name for the model
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate is called before creating a new record
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Client) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// ClientFilter represents filter criteria for clients
type ClientFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	Email         *string    `json:"email,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
