package service

import (
	"context"
	"strings"
	"time"

	"coupon-manager/internal/coupon"
	"coupon-manager/internal/model"
	"coupon-manager/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MaxListLimit caps a single page of coupons.
const MaxListLimit = 500

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
		now:        time.Now,
	}
}

// List retrieves coupons newest first. A limit of zero returns every coupon.
func (s *couponService) List(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]model.Coupon, error) {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 || limit == 0 {
		offset = 0
	}

	coupons, err := s.couponRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list coupons")
		return nil, storeError(err)
	}

	s.logger.Debug().
		Str("caller_id", callerID.String()).
		Int("count", len(coupons)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("listed coupons")

	return coupons, nil
}

// GetByID retrieves a single coupon by ID.
func (s *couponService) GetByID(ctx context.Context, callerID, id uuid.UUID) (*model.Coupon, error) {
	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to get coupon")
		return nil, storeError(err)
	}

	if c == nil {
		s.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found")
		return nil, model.ErrNotFound
	}

	return c, nil
}

// Create validates the request and stores a coupon owned by the caller.
func (s *couponService) Create(ctx context.Context, callerID uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	fields, err := validateCouponRequest(req)
	if err != nil {
		s.logger.Debug().Err(err).Msg("coupon create rejected")
		return nil, err
	}

	if err := s.ensureCodeFree(ctx, fields.code, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &model.Coupon{
		ID:              uuid.New(),
		Code:            fields.code,
		Description:     "Coupon " + fields.code,
		DiscountValue:   fields.discountValue,
		MinimumPurchase: decimal.Zero,
		ValidFrom:       fields.validFrom,
		ValidUntil:      fields.validUntil,
		UsageLimit:      model.UnlimitedUsage,
		IsActive:        true,
		Category:        trimmedOrNil(req.Category),
		CreatedBy:       callerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if d := trimmedOrNil(req.Description); d != nil {
		c.Description = *d
	}
	if fields.minimumPurchase != nil {
		c.MinimumPurchase = *fields.minimumPurchase
	}
	if fields.usageLimit != nil {
		c.UsageLimit = *fields.usageLimit
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("code", c.Code).Msg("failed to create coupon")
		return nil, storeError(err)
	}

	s.logger.Info().
		Str("coupon_id", c.ID.String()).
		Str("code", c.Code).
		Str("created_by", callerID.String()).
		Msg("coupon created")

	return c, nil
}

// Update rewrites a coupon owned by the caller. Omitted optional fields keep
// their current values.
func (s *couponService) Update(ctx context.Context, callerID, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	existing, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to load coupon for update")
		return nil, storeError(err)
	}
	if existing == nil || existing.CreatedBy != callerID {
		s.logger.Debug().
			Str("coupon_id", id.String()).
			Str("caller_id", callerID.String()).
			Msg("no owned coupon to update")
		return nil, model.ErrNotFound
	}

	fields, err := validateCouponRequest(req)
	if err != nil {
		s.logger.Debug().Err(err).Str("coupon_id", id.String()).Msg("coupon update rejected")
		return nil, err
	}

	if err := s.ensureCodeFree(ctx, fields.code, id); err != nil {
		return nil, err
	}

	changes := *existing
	changes.Code = fields.code
	changes.DiscountValue = fields.discountValue
	changes.ValidFrom = fields.validFrom
	changes.ValidUntil = fields.validUntil

	if d := trimmedOrNil(req.Description); d != nil {
		changes.Description = *d
	}
	if req.Category != nil {
		changes.Category = trimmedOrNil(req.Category)
	}
	if fields.minimumPurchase != nil {
		changes.MinimumPurchase = *fields.minimumPurchase
	}
	if fields.usageLimit != nil {
		changes.UsageLimit = *fields.usageLimit
	}
	if req.IsActive != nil {
		changes.IsActive = *req.IsActive
	}
	changes.UpdatedAt = s.now().UTC()

	if changes.UsageLimit != model.UnlimitedUsage && changes.UsageLimit < existing.UsedCount {
		return nil, model.NewValidationError("usageLimit", "Usage limit cannot be below the current used count")
	}

	updated, err := s.couponRepo.Update(ctx, &changes)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to update coupon")
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, model.ErrNotFound
	}

	s.logger.Info().
		Str("coupon_id", id.String()).
		Str("code", updated.Code).
		Msg("coupon updated")

	return updated, nil
}

// Delete removes a coupon owned by the caller.
func (s *couponService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	deleted, err := s.couponRepo.Delete(ctx, id, callerID)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return storeError(err)
	}

	if !deleted {
		s.logger.Debug().
			Str("coupon_id", id.String()).
			Str("caller_id", callerID.String()).
			Msg("no owned coupon to delete")
		return model.ErrNotFound
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")

	return nil
}

// Search returns an exact code match followed by codes containing the query.
// Without an exact match it falls back to ranked free-text search.
func (s *couponService) Search(ctx context.Context, callerID uuid.UUID, query string) ([]model.Coupon, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrInvalidQuery
	}

	all, err := s.couponRepo.List(ctx, 0, 0)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to load coupons for search")
		return nil, storeError(err)
	}

	if ranked, ok := coupon.RankByCode(query, all); ok {
		s.logger.Debug().
			Str("query", query).
			Int("count", len(ranked)).
			Msg("search matched coupon code")
		return ranked, nil
	}

	results, err := s.couponRepo.TextSearch(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to run text search")
		return nil, storeError(err)
	}

	s.logger.Debug().
		Str("query", query).
		Int("count", len(results)).
		Msg("search fell back to text search")

	return results, nil
}

// Redeem consumes one use of the coupon.
func (s *couponService) Redeem(ctx context.Context, callerID, id uuid.UUID) (*model.Coupon, error) {
	c, err := s.couponRepo.IncrementUsage(ctx, id, s.now().UTC())
	if err != nil {
		s.logger.Debug().Err(err).
			Str("coupon_id", id.String()).
			Str("caller_id", callerID.String()).
			Msg("coupon redemption refused")
		return nil, storeError(err)
	}

	s.logger.Info().
		Str("coupon_id", id.String()).
		Str("caller_id", callerID.String()).
		Int("used_count", c.UsedCount).
		Int("usage_limit", c.UsageLimit).
		Msg("coupon redeemed")

	return c, nil
}

func (s *couponService) ensureCodeFree(ctx context.Context, code string, excludeID uuid.UUID) error {
	exists, err := s.couponRepo.CodeExists(ctx, code, excludeID)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to check coupon code")
		return storeError(err)
	}
	if exists {
		s.logger.Debug().Str("code", code).Msg("coupon code already taken")
		return model.ErrDuplicateCode
	}
	return nil
}
