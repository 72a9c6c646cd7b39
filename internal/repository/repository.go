package repository

import (
	"context"
	"time"

	"coupon-manager/internal/model"

	"github.com/google/uuid"
)

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// List retrieves coupons newest first. A limit of zero returns every coupon.
	List(ctx context.Context, limit, offset int) ([]model.Coupon, error)

	// GetByID retrieves a single coupon by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// CodeExists reports whether a coupon other than excludeID already uses code.
	// Pass uuid.Nil to check against every coupon.
	CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)

	// Create inserts a new coupon.
	Create(ctx context.Context, coupon *model.Coupon) error

	// Update rewrites the editable fields and updated_at of a coupon owned by
	// coupon.CreatedBy. Returns nil, nil when no such owned coupon exists.
	Update(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)

	// Delete removes the coupon if it is owned by ownerID and reports whether a row was removed.
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	// IncrementUsage atomically consumes one use of the coupon, stamping updated_at with at.
	// Returns model.ErrNotFound or model.ErrUsageLimitExceeded when it cannot.
	IncrementUsage(ctx context.Context, id uuid.UUID, at time.Time) (*model.Coupon, error)

	// TextSearch runs a relevance-ranked search over code, description and category.
	TextSearch(ctx context.Context, query string) ([]model.Coupon, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by normalised email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
