// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all caller-related information for audit logging
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// adminIDFromContext extracts the authenticated admin id set by middleware
func adminIDFromContext(ctx context.Context) *uint {
	adminIDAny := ctx.Value(utils.AdminIDKey)
	adminID, ok := adminIDAny.(uint)
	if !ok || adminID == 0 {
		return nil
	}
	return &adminID
}

// recordAudit persists one audit entry; failures are the caller's to ignore
func recordAudit(ctx context.Context, auditRepo repository.AuditLogRepository, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	ipAddress := ""
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		AdminID:      adminIDFromContext(ctx),
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	requestID := ctx.Value(utils.RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return auditRepo.Save(ctx, audit)
}
