package seed

import (
	"context"
	"errors"
	"fmt"

	"coupon-manager/internal/model"
	"coupon-manager/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result counts what a seeding run did.
type Result struct {
	Created int
	Skipped int
	Invalid int
}

// Seeder creates fixture coupons through the coupon service so that they get
// the same validation and defaults as API-created coupons.
type Seeder struct {
	loader  Loader
	coupons service.CouponService
	logger  zerolog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(loader Loader, coupons service.CouponService, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:  loader,
		coupons: coupons,
		logger:  logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads path and creates every coupon in it for ownerID. Codes that
// already exist are skipped and invalid fixtures are counted and logged;
// any other error stops the run.
func (s *Seeder) Run(ctx context.Context, ownerID uuid.UUID, path string) (Result, error) {
	var res Result

	requests, err := s.loader.Load(ctx, path)
	if err != nil {
		return res, fmt.Errorf("failed to load fixtures: %w", err)
	}

	for i := range requests {
		req := &requests[i]

		_, err := s.coupons.Create(ctx, ownerID, req)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, model.ErrDuplicateCode):
			s.logger.Debug().Str("code", req.Code).Msg("coupon already exists, skipping")
			res.Skipped++
		case errors.Is(err, model.ErrValidation):
			s.logger.Warn().Err(err).Int("index", i).Str("code", req.Code).Msg("invalid fixture")
			res.Invalid++
		default:
			return res, fmt.Errorf("failed to seed coupon %q: %w", req.Code, err)
		}
	}

	s.logger.Info().
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Int("invalid", res.Invalid).
		Msg("seeding finished")

	return res, nil
}
