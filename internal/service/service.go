package service

import (
	"context"
	"errors"
	"fmt"

	"coupon-manager/internal/model"

	"github.com/google/uuid"
)

// CouponService defines operations for coupon management. Every method takes
// the authenticated caller explicitly.
type CouponService interface {
	// List retrieves coupons newest first. A limit of zero returns every coupon.
	List(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]model.Coupon, error)

	// GetByID retrieves a single coupon by ID.
	GetByID(ctx context.Context, callerID, id uuid.UUID) (*model.Coupon, error)

	// Create validates the request and stores a coupon owned by the caller.
	Create(ctx context.Context, callerID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)

	// Update rewrites a coupon owned by the caller.
	Update(ctx context.Context, callerID, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)

	// Delete removes a coupon owned by the caller.
	Delete(ctx context.Context, callerID, id uuid.UUID) error

	// Search returns an exact code match and its code relatives, or
	// relevance-ranked free-text results when no code matches exactly.
	Search(ctx context.Context, callerID uuid.UUID, query string) ([]model.Coupon, error)

	// Redeem consumes one use of the coupon.
	Redeem(ctx context.Context, callerID, id uuid.UUID) (*model.Coupon, error)
}

// AuthService defines account operations.
type AuthService interface {
	// Register creates an account and returns a token for it.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login exchanges credentials for a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Me returns the account behind a verified token.
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// storeError passes domain errors through and hides everything else behind
// ErrStoreUnavailable.
func storeError(err error) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}
