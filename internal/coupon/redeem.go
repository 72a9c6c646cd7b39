package coupon

import (
	"coupon-manager/internal/model"
)

// Redeem consumes one use of c and returns the updated copy. The input is never
// modified; when the usage limit is already reached it returns
// model.ErrUsageLimitExceeded.
//
// Persistent redemption must go through CouponRepository.IncrementUsage, which
// applies the same rule in a single conditional UPDATE.
func Redeem(c model.Coupon) (model.Coupon, error) {
	if !hasUsesLeft(c) {
		return c, model.ErrUsageLimitExceeded
	}
	c.UsedCount++
	return c, nil
}
