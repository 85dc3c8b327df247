// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ClipRepository defines operations for clips
type ClipRepository interface {
	Repository[models.Clip, models.ClipFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Clip, error)
	BySubmissionURL(ctx context.Context, url string) (*models.Clip, error)
	ListApprovedInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]*models.Clip, error)
	ListStaleForActiveCampaigns(ctx context.Context, staleBefore time.Time) ([]*models.Clip, error)
	ListByBatch(ctx context.Context, batchID uint) ([]*models.Clip, error)
	Update(ctx context.Context, clip models.Clip) error
	UpdateStatus(ctx context.Context, id uint, status models.ClipStatus) error
	MarkPaid(ctx context.Context, id uint, amount decimal.Decimal, batchID uint) error
	MarkDuplicate(ctx context.Context, id uint, originalID uint) error
	UpdateMetrics(ctx context.Context, id uint, m ClipMetricsUpdate) error
	RevertBatchClips(ctx context.Context, batchID uint) error
}

// ClipMetricsUpdate carries refreshed engagement counters for one clip
type ClipMetricsUpdate struct {
	Views       int64
	Likes       int64
	Comments    int64
	Shares      int64
	Retweets    int64
	Impressions int64
	TagsFound   []string
	TagsMissing []string
	UpdatedAt   time.Time
}

// ClipperRepository defines operations for clipper profiles
type ClipperRepository interface {
	Repository[models.Clipper, models.ClipperFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Clipper, error)
	ByEmail(ctx context.Context, email string) (*models.Clipper, error)
	Update(ctx context.Context, clipper models.Clipper) error
	UpdateTier(ctx context.Context, id uint, tier models.ClipperTier) error
	IncrementEarnings(ctx context.Context, id uint, amount decimal.Decimal) error
	IncrementCounters(ctx context.Context, id uint, submitted, approved int) error
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Campaign, error)
	ListByStatus(ctx context.Context, status models.CampaignStatus, limit, offset int) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign models.Campaign) error
	UpdateStatus(ctx context.Context, id uint, status models.CampaignStatus) error
}

// ClientRepository defines operations for clients
type ClientRepository interface {
	Repository[models.Client, models.ClientFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Client, error)
	ByEmail(ctx context.Context, email string) (*models.Client, error)
	Update(ctx context.Context, client models.Client) error
}

// PayoutBatchRepository defines operations for payout batches
type PayoutBatchRepository interface {
	Repository[models.PayoutBatch, models.PayoutBatchFilter]
	ByUUID(ctx context.Context, uuid string) (*models.PayoutBatch, error)
	Update(ctx context.Context, batch models.PayoutBatch) error
	UpdateStatus(ctx context.Context, id uint, status models.PayoutBatchStatus) error
	UpdateTotals(ctx context.Context, id uint, totalAmount decimal.Decimal, clipsCount int) error
	Delete(ctx context.Context, id uint) error
}

// ClipperPayoutRepository defines operations for clipper payouts
type ClipperPayoutRepository interface {
	Repository[models.ClipperPayout, models.ClipperPayoutFilter]
	ListByBatch(ctx context.Context, batchID uint) ([]*models.ClipperPayout, error)
	ListPendingByBatch(ctx context.Context, batchID uint) ([]*models.ClipperPayout, error)
	// MarkPaidIfPending performs a conditional paid-transition and reports
	// whether this call won the transition. Repeated calls are no-ops.
	MarkPaidIfPending(ctx context.Context, id uint, paidAt time.Time) (bool, error)
	SumPaidAmountByClipper(ctx context.Context, clipperID uint) (decimal.Decimal, error)
	DeleteByBatch(ctx context.Context, batchID uint) error
}

// PlatformSettingRepository defines operations for platform settings
type PlatformSettingRepository interface {
	Repository[models.PlatformSetting, models.PlatformSettingFilter]
	ByKey(ctx context.Context, key string) (*models.PlatformSetting, error)
	Upsert(ctx context.Context, key string, value []byte) error
}

// AdminRepository defines operations for admins
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
}
