package businessflow

import (
	"context"
	"testing"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPayoutSettings(t *testing.T) {
	t.Run("DefaultsWhenUnset", func(t *testing.T) {
		flow := NewSettingsFlow(newFakeSettingsRepo(), newFakeAuditRepo())

		settings, err := flow.GetPayoutSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1000), settings.MinViewsForPayout)
		assert.Equal(t, int64(100000), settings.BonusThresholdViews)
		assert.Equal(t, "1.5", settings.BonusMultiplier.String())
	})

	t.Run("DefaultsWhenCorrupted", func(t *testing.T) {
		settingsRepo := newFakeSettingsRepo()
		settingsRepo.rows[models.SettingKeyPayout] = []byte("{not json")
		flow := NewSettingsFlow(settingsRepo, newFakeAuditRepo())

		settings, err := flow.GetPayoutSettings(context.Background())
		require.Error(t, err)
		assert.Equal(t, int64(1000), settings.MinViewsForPayout)
	})

	t.Run("PerFieldFallback", func(t *testing.T) {
		settingsRepo := newFakeSettingsRepo()
		settingsRepo.rows[models.SettingKeyPayout] = []byte(`{"min_views_for_payout":500}`)
		flow := NewSettingsFlow(settingsRepo, newFakeAuditRepo())

		settings, err := flow.GetPayoutSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(500), settings.MinViewsForPayout)
		// Unset fields keep the defaults
		assert.Equal(t, int64(100000), settings.BonusThresholdViews)
		assert.Equal(t, "1.5", settings.BonusMultiplier.String())
	})

	t.Run("SubUnitMultiplierIgnored", func(t *testing.T) {
		settingsRepo := newFakeSettingsRepo()
		settingsRepo.rows[models.SettingKeyPayout] = []byte(`{"bonus_multiplier":"0.5"}`)
		flow := NewSettingsFlow(settingsRepo, newFakeAuditRepo())

		settings, err := flow.GetPayoutSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.5", settings.BonusMultiplier.String())
	})
}

func TestGetTierSettings(t *testing.T) {
	t.Run("DefaultsWhenUnset", func(t *testing.T) {
		flow := NewSettingsFlow(newFakeSettingsRepo(), newFakeAuditRepo())

		settings, err := flow.GetTierSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.00", settings.EntryRate.StringFixed(2))
		assert.Equal(t, "1.50", settings.ApprovedRate.StringFixed(2))
		assert.Equal(t, "2.00", settings.CoreRate.StringFixed(2))
	})

	t.Run("RateForFallsBackToEntry", func(t *testing.T) {
		flow := NewSettingsFlow(newFakeSettingsRepo(), newFakeAuditRepo())

		settings, err := flow.GetTierSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, settings.EntryRate, settings.RateFor(models.ClipperTier("unknown")))
		assert.Equal(t, settings.CoreRate, settings.RateFor(models.ClipperTierCore))
	})
}

func TestUpdatePayoutSettings(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("RoundTrip", func(t *testing.T) {
		settingsRepo := newFakeSettingsRepo()
		flow := NewSettingsFlow(settingsRepo, newFakeAuditRepo())

		_, err := flow.UpdatePayoutSettings(context.Background(), &dto.UpdatePayoutSettingsRequest{
			PayoutSettingsDTO: dto.PayoutSettingsDTO{
				MinViewsForPayout:   2000,
				BonusThresholdViews: 50000,
				BonusMultiplier:     "2.0",
			},
		}, metadata)
		require.NoError(t, err)

		settings, err := flow.GetPayoutSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2000), settings.MinViewsForPayout)
		assert.Equal(t, int64(50000), settings.BonusThresholdViews)
		assert.Equal(t, "2", settings.BonusMultiplier.String())
	})

	t.Run("RejectsMultiplierBelowOne", func(t *testing.T) {
		flow := NewSettingsFlow(newFakeSettingsRepo(), newFakeAuditRepo())

		_, err := flow.UpdatePayoutSettings(context.Background(), &dto.UpdatePayoutSettingsRequest{
			PayoutSettingsDTO: dto.PayoutSettingsDTO{
				MinViewsForPayout:   2000,
				BonusThresholdViews: 50000,
				BonusMultiplier:     "0.9",
			},
		}, metadata)
		require.Error(t, err)
	})
}

func TestUpdateTierSettings(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("RoundTrip", func(t *testing.T) {
		flow := NewSettingsFlow(newFakeSettingsRepo(), newFakeAuditRepo())

		_, err := flow.UpdateTierSettings(context.Background(), &dto.UpdateTierSettingsRequest{
			TierSettingsDTO: dto.TierSettingsDTO{
				EntryRate:    "1.25",
				ApprovedRate: "1.75",
				CoreRate:     "2.50",
			},
		}, metadata)
		require.NoError(t, err)

		settings, err := flow.GetTierSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.25", settings.EntryRate.StringFixed(2))
		assert.Equal(t, "1.75", settings.ApprovedRate.StringFixed(2))
		assert.Equal(t, "2.50", settings.CoreRate.StringFixed(2))
	})

	t.Run("RejectsNonPositiveRate", func(t *testing.T) {
		flow := NewSettingsFlow(newFakeSettingsRepo(), newFakeAuditRepo())

		_, err := flow.UpdateTierSettings(context.Background(), &dto.UpdateTierSettingsRequest{
			TierSettingsDTO: dto.TierSettingsDTO{
				EntryRate:    "0",
				ApprovedRate: "1.75",
				CoreRate:     "2.50",
			},
		}, metadata)
		require.Error(t, err)
	})
}
