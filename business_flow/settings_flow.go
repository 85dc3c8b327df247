package businessflow

import (
	"context"
	"encoding/json"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/shopspring/decimal"
)

// PayoutSettings is the resolved payout policy used by the payout engine
type PayoutSettings struct {
	MinViewsForPayout   int64
	BonusThresholdViews int64
	BonusMultiplier     decimal.Decimal
}

// TierSettings is the resolved platform rate table, $ per 1000 views
type TierSettings struct {
	EntryRate    decimal.Decimal
	ApprovedRate decimal.Decimal
	CoreRate     decimal.Decimal
}

// RateFor returns the platform rate for a clipper tier
func (t TierSettings) RateFor(tier models.ClipperTier) decimal.Decimal {
	switch tier {
	case models.ClipperTierApproved:
		return t.ApprovedRate
	case models.ClipperTierCore:
		return t.CoreRate
	default:
		return t.EntryRate
	}
}

// SettingsFlow resolves and updates admin-editable platform settings.
// Missing or unreadable stored values fall back to the compiled defaults so
// payout generation never blocks on configuration.
type SettingsFlow interface {
	GetPayoutSettings(ctx context.Context) (PayoutSettings, error)
	GetTierSettings(ctx context.Context) (TierSettings, error)
	GetSettings(ctx context.Context) (*dto.GetSettingsResponse, error)
	UpdatePayoutSettings(ctx context.Context, req *dto.UpdatePayoutSettingsRequest, metadata *ClientMetadata) (*dto.UpdateSettingsResponse, error)
	UpdateTierSettings(ctx context.Context, req *dto.UpdateTierSettingsRequest, metadata *ClientMetadata) (*dto.UpdateSettingsResponse, error)
}

// SettingsFlowImpl implements SettingsFlow
type SettingsFlowImpl struct {
	settingsRepo repository.PlatformSettingRepository
	auditRepo    repository.AuditLogRepository
}

// NewSettingsFlow creates a new settings flow
func NewSettingsFlow(
	settingsRepo repository.PlatformSettingRepository,
	auditRepo repository.AuditLogRepository,
) SettingsFlow {
	return &SettingsFlowImpl{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
	}
}

// storedPayoutSettings is the persisted JSON shape under payout_settings
type storedPayoutSettings struct {
	MinViewsForPayout   int64  `json:"min_views_for_payout"`
	BonusThresholdViews int64  `json:"bonus_threshold_views"`
	BonusMultiplier     string `json:"bonus_multiplier"`
}

// storedTierSettings is the persisted JSON shape under tier_settings
type storedTierSettings struct {
	EntryRate    string `json:"entry_rate"`
	ApprovedRate string `json:"approved_rate"`
	CoreRate     string `json:"core_rate"`
}

func defaultPayoutSettings() PayoutSettings {
	return PayoutSettings{
		MinViewsForPayout:   utils.DefaultMinViewsForPayout,
		BonusThresholdViews: utils.DefaultBonusThresholdViews,
		BonusMultiplier:     decimal.RequireFromString(utils.DefaultBonusMultiplier),
	}
}

func defaultTierSettings() TierSettings {
	return TierSettings{
		EntryRate:    decimal.RequireFromString(utils.DefaultEntryRate),
		ApprovedRate: decimal.RequireFromString(utils.DefaultApprovedRate),
		CoreRate:     decimal.RequireFromString(utils.DefaultCoreRate),
	}
}

func (f *SettingsFlowImpl) GetPayoutSettings(ctx context.Context) (PayoutSettings, error) {
	defaults := defaultPayoutSettings()

	row, err := f.settingsRepo.ByKey(ctx, models.SettingKeyPayout)
	if err != nil {
		return defaults, err
	}
	if row == nil {
		return defaults, nil
	}

	var stored storedPayoutSettings
	if err := json.Unmarshal(row.Value, &stored); err != nil {
		return defaults, NewBusinessError("SETTINGS_CORRUPTED", "payout settings value is corrupted", ErrSettingsCorrupted)
	}

	resolved := defaults
	if stored.MinViewsForPayout > 0 {
		resolved.MinViewsForPayout = stored.MinViewsForPayout
	}
	if stored.BonusThresholdViews > 0 {
		resolved.BonusThresholdViews = stored.BonusThresholdViews
	}
	if stored.BonusMultiplier != "" {
		multiplier, err := decimal.NewFromString(stored.BonusMultiplier)
		if err == nil && multiplier.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			resolved.BonusMultiplier = multiplier
		}
	}

	return resolved, nil
}

func (f *SettingsFlowImpl) GetTierSettings(ctx context.Context) (TierSettings, error) {
	defaults := defaultTierSettings()

	row, err := f.settingsRepo.ByKey(ctx, models.SettingKeyTiers)
	if err != nil {
		return defaults, err
	}
	if row == nil {
		return defaults, nil
	}

	var stored storedTierSettings
	if err := json.Unmarshal(row.Value, &stored); err != nil {
		return defaults, NewBusinessError("SETTINGS_CORRUPTED", "tier settings value is corrupted", ErrSettingsCorrupted)
	}

	resolved := defaults
	if rate, err := decimal.NewFromString(stored.EntryRate); err == nil && rate.IsPositive() {
		resolved.EntryRate = rate
	}
	if rate, err := decimal.NewFromString(stored.ApprovedRate); err == nil && rate.IsPositive() {
		resolved.ApprovedRate = rate
	}
	if rate, err := decimal.NewFromString(stored.CoreRate); err == nil && rate.IsPositive() {
		resolved.CoreRate = rate
	}

	return resolved, nil
}

func (f *SettingsFlowImpl) GetSettings(ctx context.Context) (*dto.GetSettingsResponse, error) {
	payout, err := f.GetPayoutSettings(ctx)
	if err != nil {
		return nil, err
	}
	tiers, err := f.GetTierSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.GetSettingsResponse{
		Message: "Settings retrieved",
		Payout: dto.PayoutSettingsDTO{
			MinViewsForPayout:   payout.MinViewsForPayout,
			BonusThresholdViews: payout.BonusThresholdViews,
			BonusMultiplier:     payout.BonusMultiplier.String(),
		},
		Tiers: dto.TierSettingsDTO{
			EntryRate:    tiers.EntryRate.StringFixed(2),
			ApprovedRate: tiers.ApprovedRate.StringFixed(2),
			CoreRate:     tiers.CoreRate.StringFixed(2),
		},
	}, nil
}

func (f *SettingsFlowImpl) UpdatePayoutSettings(ctx context.Context, req *dto.UpdatePayoutSettingsRequest, metadata *ClientMetadata) (*dto.UpdateSettingsResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	multiplier, err := decimal.NewFromString(req.BonusMultiplier)
	if err != nil || multiplier.LessThan(decimal.NewFromInt(1)) {
		return nil, NewBusinessError("INVALID_MULTIPLIER", "bonus multiplier must be a number >= 1", err)
	}

	stored := storedPayoutSettings{
		MinViewsForPayout:   req.MinViewsForPayout,
		BonusThresholdViews: req.BonusThresholdViews,
		BonusMultiplier:     multiplier.String(),
	}
	value, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}

	if err := f.settingsRepo.Upsert(ctx, models.SettingKeyPayout, value); err != nil {
		return nil, NewBusinessError("SETTINGS_UPDATE_FAILED", "Failed to update payout settings", err)
	}

	_ = recordAudit(ctx, f.auditRepo, models.AuditActionSettingsUpdated, "Payout settings updated", true, nil, metadata)

	return &dto.UpdateSettingsResponse{Message: "Payout settings updated"}, nil
}

func (f *SettingsFlowImpl) UpdateTierSettings(ctx context.Context, req *dto.UpdateTierSettingsRequest, metadata *ClientMetadata) (*dto.UpdateSettingsResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	rates := map[string]string{
		"entry":    req.EntryRate,
		"approved": req.ApprovedRate,
		"core":     req.CoreRate,
	}
	for tier, raw := range rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil || !rate.IsPositive() {
			return nil, NewBusinessErrorf("INVALID_RATE", "%s rate must be a positive number", err, tier)
		}
	}

	stored := storedTierSettings{
		EntryRate:    req.EntryRate,
		ApprovedRate: req.ApprovedRate,
		CoreRate:     req.CoreRate,
	}
	value, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}

	if err := f.settingsRepo.Upsert(ctx, models.SettingKeyTiers, value); err != nil {
		return nil, NewBusinessError("SETTINGS_UPDATE_FAILED", "Failed to update tier settings", err)
	}

	_ = recordAudit(ctx, f.auditRepo, models.AuditActionSettingsUpdated, "Tier settings updated", true, nil, metadata)

	return &dto.UpdateSettingsResponse{Message: "Tier settings updated"}, nil
}
