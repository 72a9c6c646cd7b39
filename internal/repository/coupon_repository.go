package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coupon-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const couponColumns = `id, code, description, discount_value, minimum_purchase, valid_from, valid_until,
		usage_limit, used_count, is_active, category, created_by, created_at, updated_at`

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"

	usageWithinLimitConstraint = "coupons_usage_within_limit"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.DiscountValue,
		&c.MinimumPurchase,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.UsageLimit,
		&c.UsedCount,
		&c.IsActive,
		&c.Category,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) collect(rows pgx.Rows) ([]model.Coupon, error) {
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// List retrieves coupons newest first. A limit of zero returns every coupon.
func (r *couponRepository) List(ctx context.Context, limit, offset int) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + `
		FROM coupons
		ORDER BY created_at DESC, id`
	args := []any{}

	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + `
		FROM coupons
		WHERE id = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// CodeExists reports whether a coupon other than excludeID already uses code.
func (r *couponRepository) CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM coupons WHERE code = $1 AND id <> $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, code, excludeID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to check coupon code")
		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}

	return exists, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (` + couponColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Code,
		c.Description,
		c.DiscountValue,
		c.MinimumPurchase,
		c.ValidFrom,
		c.ValidUntil,
		c.UsageLimit,
		c.UsedCount,
		c.IsActive,
		c.Category,
		c.CreatedBy,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			r.logger.Debug().Err(err).Str("code", c.Code).Msg("coupon insert rejected by constraint")
			return mapped
		}
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().
		Str("coupon_id", c.ID.String()).
		Str("code", c.Code).
		Msg("coupon created successfully")

	return nil
}

// Update rewrites the editable fields of a coupon owned by c.CreatedBy.
func (r *couponRepository) Update(ctx context.Context, c *model.Coupon) (*model.Coupon, error) {
	query := `
		UPDATE coupons
		SET code = $3,
			description = $4,
			discount_value = $5,
			minimum_purchase = $6,
			valid_from = $7,
			valid_until = $8,
			usage_limit = $9,
			is_active = $10,
			category = $11,
			updated_at = $12
		WHERE id = $1 AND created_by = $2
		RETURNING ` + couponColumns

	updated, err := scanCoupon(r.pool.QueryRow(ctx, query,
		c.ID,
		c.CreatedBy,
		c.Code,
		c.Description,
		c.DiscountValue,
		c.MinimumPurchase,
		c.ValidFrom,
		c.ValidUntil,
		c.UsageLimit,
		c.IsActive,
		c.Category,
		c.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("coupon_id", c.ID.String()).Msg("no owned coupon to update")
			return nil, nil
		}
		if mapped := mapConstraintError(err); mapped != nil {
			r.logger.Debug().Err(err).Str("coupon_id", c.ID.String()).Msg("coupon update rejected by constraint")
			return nil, mapped
		}
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to update coupon")
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return updated, nil
}

// Delete removes the coupon if it is owned by ownerID.
func (r *couponRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return false, fmt.Errorf("failed to delete coupon: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// IncrementUsage consumes one use in a single conditional UPDATE, so concurrent
// redemptions can never push used_count past usage_limit.
func (r *couponRepository) IncrementUsage(ctx context.Context, id uuid.UUID, at time.Time) (*model.Coupon, error) {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1,
			updated_at = $2
		WHERE id = $1 AND (usage_limit = -1 OR used_count < usage_limit)
		RETURNING ` + couponColumns

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err == nil {
		r.logger.Debug().
			Str("coupon_id", id.String()).
			Int("used_count", c.UsedCount).
			Msg("coupon usage incremented")
		return c, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to increment coupon usage")
		return nil, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.ErrNotFound
	}

	r.logger.Debug().
		Str("coupon_id", id.String()).
		Int("usage_limit", existing.UsageLimit).
		Msg("coupon usage limit reached")

	return nil, model.ErrUsageLimitExceeded
}

// TextSearch matches the query against the full-text vector and, for partial
// words, a case-insensitive substring of code, description or category.
// Results are ordered by text rank, then newest first.
func (r *couponRepository) TextSearch(ctx context.Context, query string) ([]model.Coupon, error) {
	sql := `SELECT ` + couponColumns + `
		FROM coupons
		WHERE search_vector @@ plainto_tsquery('simple', $1)
			OR code ILIKE $2 ESCAPE '\'
			OR description ILIKE $2 ESCAPE '\'
			OR COALESCE(category, '') ILIKE $2 ESCAPE '\'
		ORDER BY ts_rank(search_vector, plainto_tsquery('simple', $1)) DESC, created_at DESC, id`

	pattern := "%" + escapeLike(query) + "%"

	rows, err := r.pool.Query(ctx, sql, query, pattern)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search coupons")
		return nil, fmt.Errorf("failed to search coupons: %w", err)
	}

	return r.collect(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// mapConstraintError turns constraint violations the service already guards
// against into domain errors, so that races surface the same way.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch {
	case pgErr.Code == pgUniqueViolation:
		return model.ErrDuplicateCode
	case pgErr.Code == pgCheckViolation && pgErr.ConstraintName == usageWithinLimitConstraint:
		return model.NewValidationError("usageLimit", "Usage limit cannot be below the current used count")
	}

	return nil
}
