// Package coupon holds the pure coupon rules: validity, status classification,
// redemption and code-based search ranking. Nothing here touches storage.
package coupon

import (
	"strings"
	"time"

	"coupon-manager/internal/model"
)

// Status is the display classification of a coupon at a point in time.
type Status string

const (
	StatusInactive     Status = "Inactive"
	StatusNotStarted   Status = "Not Started"
	StatusExpired      Status = "Expired"
	StatusLimitReached Status = "Limit Reached"
	StatusActive       Status = "Active"
)

// Usable reports whether the status permits the coupon to be used.
func (s Status) Usable() bool {
	return s == StatusActive
}

// NormalizeCode trims and upper-cases a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// View renders c together with its validity as of now.
func View(c model.Coupon, now time.Time) model.CouponResponse {
	return model.CouponResponse{
		Coupon:  c,
		IsValid: IsValid(c, now),
		Status:  string(StatusAt(c, now)),
	}
}

// Views renders a slice of coupons with a shared reference time.
func Views(coupons []model.Coupon, now time.Time) []model.CouponResponse {
	views := make([]model.CouponResponse, len(coupons))
	for i, c := range coupons {
		views[i] = View(c, now)
	}
	return views
}
