package repository

import (
	"context"
	"testing"
	"time"

	"coupon-manager/internal/database"
	"coupon-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, pool *pgxpool.Pool, email string) model.User {
	u := model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}

	require.NoError(t, NewUserRepository(pool, zerolog.Nop()).Create(context.Background(), &u))

	return u
}

// newTestCoupon builds a valid coupon owned by ownerID.
func newTestCoupon(ownerID uuid.UUID, code string, createdAt time.Time) *model.Coupon {
	return &model.Coupon{
		ID:              uuid.New(),
		Code:            code,
		Description:     "Test coupon " + code,
		DiscountValue:   decimal.RequireFromString("10.50"),
		MinimumPurchase: decimal.Zero,
		ValidFrom:       createdAt.Add(-24 * time.Hour),
		ValidUntil:      createdAt.Add(24 * time.Hour),
		UsageLimit:      model.UnlimitedUsage,
		IsActive:        true,
		CreatedBy:       ownerID,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

// seedCoupons inserts coupons through the repository.
func seedCoupons(t *testing.T, repo CouponRepository, coupons ...*model.Coupon) {
	for _, c := range coupons {
		require.NoError(t, repo.Create(context.Background(), c))
	}
}
