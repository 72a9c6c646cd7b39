package service

import (
	"math"
	"strings"
	"time"

	"coupon-manager/internal/coupon"
	"coupon-manager/internal/model"

	"github.com/shopspring/decimal"
)

const (
	dateOnlyLayout = "2006-01-02"

	// moneyScale is the number of decimal places money columns hold.
	moneyScale = 2
)

// maxMoney is the exclusive upper bound of a NUMERIC(12,2) column.
var maxMoney = decimal.New(1, 10)

// couponFields is a validated, normalised CouponRequest.
type couponFields struct {
	code            string
	discountValue   decimal.Decimal
	minimumPurchase *decimal.Decimal
	validFrom       time.Time
	validUntil      time.Time
	usageLimit      *int
}

// validateCouponRequest checks the fields shared by create and update. Fields
// that are optional stay nil so each caller can apply its own default.
func validateCouponRequest(req *model.CouponRequest) (*couponFields, error) {
	if req == nil {
		return nil, model.ErrValidation
	}

	f := &couponFields{
		code:            coupon.NormalizeCode(req.Code),
		minimumPurchase: req.MinimumPurchase,
		usageLimit:      req.UsageLimit,
	}

	if f.code == "" {
		return nil, model.NewValidationError("code", "Coupon code is required")
	}

	if req.DiscountValue == nil {
		return nil, model.NewValidationError("discountValue", "Discount value is required")
	}
	if req.DiscountValue.IsNegative() {
		return nil, model.NewValidationError("discountValue", "Discount value must not be negative")
	}
	if err := checkMoney("discountValue", "Discount value", *req.DiscountValue); err != nil {
		return nil, err
	}
	f.discountValue = *req.DiscountValue

	if f.minimumPurchase != nil {
		if f.minimumPurchase.IsNegative() {
			return nil, model.NewValidationError("minimumPurchase", "Minimum purchase must not be negative")
		}
		if err := checkMoney("minimumPurchase", "Minimum purchase", *f.minimumPurchase); err != nil {
			return nil, err
		}
	}

	var err error
	if f.validFrom, err = parseDate("validFrom", req.ValidFrom); err != nil {
		return nil, err
	}
	if f.validUntil, err = parseDate("validUntil", req.ValidUntil); err != nil {
		return nil, err
	}
	if f.validUntil.Before(f.validFrom) {
		return nil, model.NewValidationError("validUntil", "Valid until must not be before valid from")
	}

	if f.usageLimit != nil && *f.usageLimit < model.UnlimitedUsage {
		return nil, model.NewValidationError("usageLimit", "Usage limit must be -1 for unlimited or a non-negative number")
	}
	if f.usageLimit != nil && *f.usageLimit > math.MaxInt32 {
		return nil, model.NewValidationError("usageLimit", "Usage limit is too large")
	}

	return f, nil
}

// checkMoney rejects amounts the money columns cannot hold exactly.
func checkMoney(field, label string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return model.NewValidationError(field, label+" must have at most 2 decimal places")
	}
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		return model.NewValidationError(field, label+" must be less than 10000000000")
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps and plain dates, which are read as UTC midnight.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, model.NewValidationError(field, "Date is required")
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}

	return time.Time{}, model.NewValidationError(field, "Date must be RFC 3339 or YYYY-MM-DD")
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
