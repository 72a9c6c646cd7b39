// Command seed loads coupon fixtures into the database, creating them on
// behalf of a seed owner account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"coupon-manager/internal/auth"
	"coupon-manager/internal/config"
	"coupon-manager/internal/database"
	"coupon-manager/internal/model"
	"coupon-manager/internal/repository"
	"coupon-manager/internal/seed"
	"coupon-manager/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	file := flag.String("file", cfg.Seed.File, "fixture file to load (.yaml or .yaml.gz)")
	flag.Parse()

	logger := config.NewLogger(cfg.Logger)

	if cfg.Seed.OwnerPassword == "" {
		return errors.New("SEED_OWNER_PASSWORD is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(repository.NewUserRepository(pool, logger), tokens, logger)
	couponService := service.NewCouponService(repository.NewCouponRepository(pool, logger), logger)

	ownerID, err := ensureOwner(ctx, authService, cfg.Seed)
	if err != nil {
		return err
	}

	loader := newLoader(ctx, cfg.S3, logger)

	res, err := seed.NewSeeder(loader, couponService, logger).Run(ctx, ownerID, *file)
	if err != nil {
		return err
	}

	fmt.Printf("created=%d skipped=%d invalid=%d\n", res.Created, res.Skipped, res.Invalid)
	return nil
}

// ensureOwner logs in as the seed owner, registering the account first if needed.
func ensureOwner(ctx context.Context, authService service.AuthService, cfg config.SeedConfig) (uuid.UUID, error) {
	resp, err := authService.Login(ctx, &model.LoginRequest{
		Email:    cfg.OwnerEmail,
		Password: cfg.OwnerPassword,
	})
	if err == nil {
		return resp.User.ID, nil
	}
	if !errors.Is(err, model.ErrInvalidCredentials) {
		return uuid.Nil, fmt.Errorf("failed to log in seed owner: %w", err)
	}

	resp, err = authService.Register(ctx, &model.RegisterRequest{
		Email:    cfg.OwnerEmail,
		Password: cfg.OwnerPassword,
		Name:     cfg.OwnerName,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to register seed owner: %w", err)
	}
	return resp.User.ID, nil
}

// newLoader returns a local loader, preferring S3 when it is enabled and reachable.
func newLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)

	if !cfg.Enabled {
		logger.Info().Msg("using local file system for fixtures (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, logger)
}
