package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for admin access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Payout policy defaults, used when the platform settings store has no
// override for the corresponding key
const (
	// DefaultMinViewsForPayout gates per-clip payout eligibility
	DefaultMinViewsForPayout = 1000

	// DefaultBonusThresholdViews is the view count at which the bonus
	// multiplier kicks in
	DefaultBonusThresholdViews = 100000

	// DefaultBonusMultiplier multiplies the base payout once the bonus
	// threshold is reached
	DefaultBonusMultiplier = "1.5"

	// Default tier rates, $ per 1000 views
	DefaultEntryRate    = "1.00"
	DefaultApprovedRate = "1.50"
	DefaultCoreRate     = "2.00"
)

// Metrics refresh constants
const (
	// MetricsFreshnessWindow is how old clip metrics may get before the
	// refresher re-fetches them
	MetricsFreshnessWindow = 24 * time.Hour
)

const USDCurrency = "USD"
