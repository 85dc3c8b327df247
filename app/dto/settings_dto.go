package dto

// PayoutSettingsDTO carries the payout policy knobs
type PayoutSettingsDTO struct {
	MinViewsForPayout   int64  `json:"min_views_for_payout" validate:"min=0"`
	BonusThresholdViews int64  `json:"bonus_threshold_views" validate:"min=0"`
	BonusMultiplier     string `json:"bonus_multiplier" validate:"required,numeric"`
}

// TierSettingsDTO carries the platform tier rates, $ per 1000 views
type TierSettingsDTO struct {
	EntryRate    string `json:"entry_rate" validate:"required,numeric"`
	ApprovedRate string `json:"approved_rate" validate:"required,numeric"`
	CoreRate     string `json:"core_rate" validate:"required,numeric"`
}

// GetSettingsResponse returns both setting groups
type GetSettingsResponse struct {
	Message string            `json:"message"`
	Payout  PayoutSettingsDTO `json:"payout"`
	Tiers   TierSettingsDTO   `json:"tiers"`
}

// UpdatePayoutSettingsRequest overwrites the payout policy
type UpdatePayoutSettingsRequest struct {
	PayoutSettingsDTO
}

// UpdateTierSettingsRequest overwrites the tier rates
type UpdateTierSettingsRequest struct {
	TierSettingsDTO
}

// UpdateSettingsResponse acknowledges a settings write
type UpdateSettingsResponse struct {
	Message string `json:"message"`
}
