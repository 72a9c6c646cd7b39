package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnlimitedUsage is the usageLimit sentinel for coupons without a cap.
const UnlimitedUsage = -1

// Coupon represents a discount coupon owned by the user who created it.
type Coupon struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Code            string          `json:"code" db:"code"`
	Description     string          `json:"description" db:"description"`
	DiscountValue   decimal.Decimal `json:"discountValue" db:"discount_value"`
	MinimumPurchase decimal.Decimal `json:"minimumPurchase" db:"minimum_purchase"`
	ValidFrom       time.Time       `json:"validFrom" db:"valid_from"`
	ValidUntil      time.Time       `json:"validUntil" db:"valid_until"`
	UsageLimit      int             `json:"usageLimit" db:"usage_limit"`
	UsedCount       int             `json:"usedCount" db:"used_count"`
	IsActive        bool            `json:"isActive" db:"is_active"`
	Category        *string         `json:"category,omitempty" db:"category"`
	CreatedBy       uuid.UUID       `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// Unlimited reports whether the coupon has no usage cap.
func (c *Coupon) Unlimited() bool {
	return c.UsageLimit == UnlimitedUsage
}

// CouponRequest is the payload for creating or updating a coupon.
// Dates are kept as strings so that malformed values surface as field errors.
type CouponRequest struct {
	Code            string           `json:"code" yaml:"code"`
	Description     *string          `json:"description,omitempty" yaml:"description"`
	DiscountValue   *decimal.Decimal `json:"discountValue" yaml:"discountValue"`
	MinimumPurchase *decimal.Decimal `json:"minimumPurchase,omitempty" yaml:"minimumPurchase"`
	ValidFrom       string           `json:"validFrom" yaml:"validFrom"`
	ValidUntil      string           `json:"validUntil" yaml:"validUntil"`
	UsageLimit      *int             `json:"usageLimit,omitempty" yaml:"usageLimit"`
	Category        *string          `json:"category,omitempty" yaml:"category"`
	IsActive        *bool            `json:"isActive,omitempty" yaml:"isActive"`
}

// CouponResponse is a coupon plus its validity as of the time it was rendered.
type CouponResponse struct {
	Coupon
	IsValid bool   `json:"isValid"`
	Status  string `json:"status"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
