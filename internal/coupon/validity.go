package coupon

import (
	"time"

	"coupon-manager/internal/model"
)

// IsValid reports whether c can be used at now. Both ends of the validity
// window are inclusive.
func IsValid(c model.Coupon, now time.Time) bool {
	return c.IsActive &&
		!now.Before(c.ValidFrom) &&
		!now.After(c.ValidUntil) &&
		hasUsesLeft(c)
}

// StatusAt classifies c at now. The checks run in priority order and the first
// match wins; a coupon is StatusActive exactly when IsValid returns true.
func StatusAt(c model.Coupon, now time.Time) Status {
	switch {
	case !c.IsActive:
		return StatusInactive
	case now.Before(c.ValidFrom):
		return StatusNotStarted
	case now.After(c.ValidUntil):
		return StatusExpired
	case !hasUsesLeft(c):
		return StatusLimitReached
	default:
		return StatusActive
	}
}

func hasUsesLeft(c model.Coupon) bool {
	return c.Unlimited() || c.UsedCount < c.UsageLimit
}
