package coupon

import (
	"strings"

	"coupon-manager/internal/model"
)

// RankByCode looks for a coupon whose code equals query, ignoring case.
// On a hit the exact match comes first, followed by every other coupon whose
// code contains the query, in the order they were given. The boolean is false
// when there is no exact match, in which case callers fall back to free-text
// search.
func RankByCode(query string, coupons []model.Coupon) ([]model.Coupon, bool) {
	q := NormalizeCode(query)
	if q == "" {
		return nil, false
	}

	exact := -1
	for i := range coupons {
		if strings.ToUpper(coupons[i].Code) == q {
			exact = i
			break
		}
	}
	if exact < 0 {
		return nil, false
	}

	ranked := []model.Coupon{coupons[exact]}
	for i := range coupons {
		if i == exact {
			continue
		}
		code := strings.ToUpper(coupons[i].Code)
		if code != q && strings.Contains(code, q) {
			ranked = append(ranked, coupons[i])
		}
	}

	return ranked, true
}
