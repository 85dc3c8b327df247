package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClipStatusTransitions(t *testing.T) {
	t.Run("PendingClipIsReviewable", func(t *testing.T) {
		clip := &Clip{Status: ClipStatusPending}
		assert.True(t, clip.IsReviewable())
		assert.True(t, clip.CanTransitionTo(ClipStatusApproved))
		assert.True(t, clip.CanTransitionTo(ClipStatusRejected))
		assert.False(t, clip.CanTransitionTo(ClipStatusPaid))
	})

	t.Run("ApprovedClipOnlyBecomesPaid", func(t *testing.T) {
		clip := &Clip{Status: ClipStatusApproved}
		assert.False(t, clip.IsReviewable())
		assert.True(t, clip.CanTransitionTo(ClipStatusPaid))
		assert.False(t, clip.CanTransitionTo(ClipStatusRejected))
	})

	t.Run("PaidClipRevertsOnlyToApproved", func(t *testing.T) {
		clip := &Clip{Status: ClipStatusPaid}
		assert.True(t, clip.CanTransitionTo(ClipStatusApproved))
		assert.False(t, clip.CanTransitionTo(ClipStatusPending))
		assert.False(t, clip.CanTransitionTo(ClipStatusRejected))
	})

	t.Run("RejectedClipIsTerminal", func(t *testing.T) {
		clip := &Clip{Status: ClipStatusRejected}
		assert.False(t, clip.CanTransitionTo(ClipStatusPending))
		assert.False(t, clip.CanTransitionTo(ClipStatusApproved))
		assert.False(t, clip.CanTransitionTo(ClipStatusPaid))
	})
}

func TestCampaignStatusTransitions(t *testing.T) {
	t.Run("OnlyActiveCampaignsAcceptSubmissions", func(t *testing.T) {
		assert.True(t, (&Campaign{Status: CampaignStatusActive}).AcceptsSubmissions())
		assert.False(t, (&Campaign{Status: CampaignStatusDraft}).AcceptsSubmissions())
		assert.False(t, (&Campaign{Status: CampaignStatusPaused}).AcceptsSubmissions())
		assert.False(t, (&Campaign{Status: CampaignStatusCompleted}).AcceptsSubmissions())
	})

	t.Run("LifecycleEdges", func(t *testing.T) {
		draft := &Campaign{Status: CampaignStatusDraft}
		assert.True(t, draft.CanTransitionTo(CampaignStatusActive))
		assert.False(t, draft.CanTransitionTo(CampaignStatusCompleted))

		active := &Campaign{Status: CampaignStatusActive}
		assert.True(t, active.CanTransitionTo(CampaignStatusPaused))
		assert.True(t, active.CanTransitionTo(CampaignStatusCompleted))
		assert.False(t, active.CanTransitionTo(CampaignStatusDraft))

		paused := &Campaign{Status: CampaignStatusPaused}
		assert.True(t, paused.CanTransitionTo(CampaignStatusActive))
		assert.True(t, paused.CanTransitionTo(CampaignStatusCompleted))

		completed := &Campaign{Status: CampaignStatusCompleted}
		assert.False(t, completed.CanTransitionTo(CampaignStatusActive))
	})
}

func TestCampaignRateForTier(t *testing.T) {
	t.Run("ZeroRatesDeferToPlatform", func(t *testing.T) {
		campaign := &Campaign{}
		for _, tier := range []ClipperTier{ClipperTierEntry, ClipperTierApproved, ClipperTierCore} {
			_, _, ok := campaign.RateForTier(tier)
			assert.False(t, ok)
		}
	})

	t.Run("EntryAndApprovedOverridesArePerThousandViews", func(t *testing.T) {
		campaign := &Campaign{
			Tier1CpmRate: decimal.RequireFromString("1.20"),
			Tier2CpmRate: decimal.RequireFromString("1.80"),
		}

		rate, perClip, ok := campaign.RateForTier(ClipperTierEntry)
		assert.True(t, ok)
		assert.False(t, perClip)
		assert.Equal(t, "1.20", rate.StringFixed(2))

		rate, perClip, ok = campaign.RateForTier(ClipperTierApproved)
		assert.True(t, ok)
		assert.False(t, perClip)
		assert.Equal(t, "1.80", rate.StringFixed(2))
	})

	t.Run("CoreOverrideIsFlatPerClip", func(t *testing.T) {
		campaign := &Campaign{Tier3FixedRate: decimal.RequireFromString("50.00")}

		rate, perClip, ok := campaign.RateForTier(ClipperTierCore)
		assert.True(t, ok)
		assert.True(t, perClip)
		assert.Equal(t, "50.00", rate.StringFixed(2))
	})
}

func TestClipperCanSubmit(t *testing.T) {
	assert.True(t, (&Clipper{Status: ClipperStatusActive}).CanSubmit())
	assert.False(t, (&Clipper{Status: ClipperStatusPending}).CanSubmit())
	assert.False(t, (&Clipper{Status: ClipperStatusSuspended}).CanSubmit())
}

func TestPayoutBatchLifecycle(t *testing.T) {
	t.Run("OnlyDraftIsDeletable", func(t *testing.T) {
		assert.True(t, (&PayoutBatch{Status: PayoutBatchStatusDraft}).IsDeletable())
		assert.False(t, (&PayoutBatch{Status: PayoutBatchStatusProcessing}).IsDeletable())
		assert.False(t, (&PayoutBatch{Status: PayoutBatchStatusCompleted}).IsDeletable())
		assert.False(t, (&PayoutBatch{Status: PayoutBatchStatusCancelled}).IsDeletable())
	})

	t.Run("TransitionEdges", func(t *testing.T) {
		draft := &PayoutBatch{Status: PayoutBatchStatusDraft}
		assert.True(t, draft.CanTransitionTo(PayoutBatchStatusProcessing))
		assert.True(t, draft.CanTransitionTo(PayoutBatchStatusCancelled))
		assert.False(t, draft.CanTransitionTo(PayoutBatchStatusCompleted))

		processing := &PayoutBatch{Status: PayoutBatchStatusProcessing}
		assert.True(t, processing.CanTransitionTo(PayoutBatchStatusCompleted))
		assert.False(t, processing.CanTransitionTo(PayoutBatchStatusCancelled))

		completed := &PayoutBatch{Status: PayoutBatchStatusCompleted}
		assert.False(t, completed.CanTransitionTo(PayoutBatchStatusProcessing))
	})
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, ClipStatusApproved.Valid())
	assert.False(t, ClipStatus("bogus").Valid())

	assert.True(t, ClipPlatformYouTube.Valid())
	assert.False(t, ClipPlatform("myspace").Valid())

	assert.True(t, ClipperTierCore.Valid())
	assert.False(t, ClipperTier("vip").Valid())

	assert.True(t, ClipperPayoutStatusPaid.Valid())
	assert.False(t, ClipperPayoutStatus("queued").Valid())
}
