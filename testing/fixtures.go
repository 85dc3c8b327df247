// Package testing provides entity builders shared by the test suites
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// NewTestClipper creates an active clipper in the given tier
func NewTestClipper(id uint, tier models.ClipperTier) *models.Clipper {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	return &models.Clipper{
		ID:            id,
		UUID:          uuid.New(),
		Name:          fmt.Sprintf("Clipper %d", id),
		Email:         fmt.Sprintf("clipper.%d.%s@example.com", id, randomDigits),
		Tier:          tier,
		TotalEarnings: decimal.Zero,
		Status:        models.ClipperStatusActive,
		CreatedAt:     utils.UTCNow(),
	}
}

// NewTestCampaign creates a campaign in the given status with no rate overrides
func NewTestCampaign(id uint, status models.CampaignStatus) *models.Campaign {
	return &models.Campaign{
		ID:        id,
		UUID:      uuid.New(),
		ClientID:  1,
		Name:      fmt.Sprintf("Campaign %d", id),
		Status:    status,
		CreatedAt: utils.UTCNow(),
	}
}

// NewTestClip creates an approved clip attributed to the clipper and campaign
func NewTestClip(id uint, clipper *models.Clipper, campaign *models.Campaign, views int64, createdAt time.Time) *models.Clip {
	clip := &models.Clip{
		ID:            id,
		UUID:          uuid.New(),
		Platform:      models.ClipPlatformTikTok,
		SubmissionURL: fmt.Sprintf("https://www.tiktok.com/@creator/video/%d", 7000000000000000000+int64(id)),
		Views:         views,
		Status:        models.ClipStatusApproved,
		CreatedAt:     createdAt,
	}
	if clipper != nil {
		clip.ClipperID = &clipper.ID
		clip.Clipper = clipper
	}
	if campaign != nil {
		clip.CampaignID = &campaign.ID
		clip.Campaign = campaign
	}
	return clip
}

// NewTestAdmin creates an active admin whose password is the given plaintext
func NewTestAdmin(id uint, username, password string) (*models.Admin, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &models.Admin{
		ID:           id,
		UUID:         uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
	}, nil
}

// NewTestBatch creates a payout batch in the given status covering the period
func NewTestBatch(id uint, status models.PayoutBatchStatus, periodStart, periodEnd time.Time) *models.PayoutBatch {
	return &models.PayoutBatch{
		ID:          id,
		UUID:        uuid.New(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TotalAmount: decimal.Zero,
		Status:      status,
		CreatedAt:   utils.UTCNow(),
	}
}

// NewTestPayout creates a pending clipper payout row in the batch
func NewTestPayout(id uint, batch *models.PayoutBatch, clipper *models.Clipper, amount string) *models.ClipperPayout {
	return &models.ClipperPayout{
		ID:            id,
		UUID:          uuid.New(),
		PayoutBatchID: batch.ID,
		ClipperID:     clipper.ID,
		Amount:        decimal.RequireFromString(amount),
		BonusAmount:   decimal.Zero,
		Status:        models.ClipperPayoutStatusPending,
		Clipper:       clipper,
		CreatedAt:     utils.UTCNow(),
	}
}
