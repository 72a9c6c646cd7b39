// Package seed loads coupon fixtures from local disk or S3 and creates them
// through the coupon service.
package seed

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"coupon-manager/internal/model"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader reads a fixture file and returns the coupon requests it holds.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.CouponRequest, error)
}

// fixtureFile is the YAML layout of a fixture file.
type fixtureFile struct {
	Coupons []model.CouponRequest `yaml:"coupons"`
}

// decodeFixtures parses YAML fixtures from r, gunzipping first when gzipped is set.
func decodeFixtures(r io.Reader, gzipped bool) ([]model.CouponRequest, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var f fixtureFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return []model.CouponRequest{}, nil
		}
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	if f.Coupons == nil {
		f.Coupons = []model.CouponRequest{}
	}
	return f.Coupons, nil
}

func isGzipped(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// fileLoader implements Loader for fixture files on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based fixture loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "fixture-loader").Logger(),
	}
}

// Load reads a YAML fixture file. Files ending in .gz are gunzipped.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.CouponRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Msg("loading fixture file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open fixture file")
		return nil, fmt.Errorf("failed to open fixture file %s: %w", path, err)
	}
	defer file.Close()

	coupons, err := decodeFixtures(file, isGzipped(path))
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read fixture file")
		return nil, fmt.Errorf("fixture file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("coupons_loaded", len(coupons)).
		Msg("fixture file loaded successfully")

	return coupons, nil
}
