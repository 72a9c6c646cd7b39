package seed

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixtures = `coupons:
  - code: save10
    description: Ten percent off
    discountValue: 10
    minimumPurchase: "25.50"
    validFrom: "2024-01-01"
    validUntil: "2024-12-31T23:59:59Z"
    usageLimit: 100
    category: General
  - code: FREESHIP
    discountValue: 5.99
    validFrom: "2024-01-01"
    validUntil: "2024-06-30"
    isActive: false
`

// createTestFixtureFile writes content to a temp file, gzipping it when the name ends in .gz.
func createTestFixtureFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	if isGzipped(name) {
		gz := gzip.NewWriter(file)
		_, err = gz.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
		return path
	}

	_, err = file.WriteString(content)
	require.NoError(t, err)
	return path
}

func TestFileLoader_Load(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	ctx := context.Background()

	for _, name := range []string{"fixtures.yaml", "fixtures.yaml.gz"} {
		t.Run(name, func(t *testing.T) {
			path := createTestFixtureFile(t, name, sampleFixtures)

			coupons, err := loader.Load(ctx, path)

			require.NoError(t, err)
			require.Len(t, coupons, 2)

			first := coupons[0]
			assert.Equal(t, "save10", first.Code)
			require.NotNil(t, first.Description)
			assert.Equal(t, "Ten percent off", *first.Description)
			require.NotNil(t, first.DiscountValue)
			assert.Equal(t, "10", first.DiscountValue.String())
			require.NotNil(t, first.MinimumPurchase)
			assert.Equal(t, "25.5", first.MinimumPurchase.String())
			assert.Equal(t, "2024-01-01", first.ValidFrom)
			assert.Equal(t, "2024-12-31T23:59:59Z", first.ValidUntil)
			require.NotNil(t, first.UsageLimit)
			assert.Equal(t, 100, *first.UsageLimit)
			assert.Nil(t, first.IsActive)

			second := coupons[1]
			assert.Equal(t, "5.99", second.DiscountValue.String())
			assert.Nil(t, second.UsageLimit)
			assert.Nil(t, second.Description)
			require.NotNil(t, second.IsActive)
			assert.False(t, *second.IsActive)
		})
	}
}

func TestFileLoader_Load_EmptyFile(t *testing.T) {
	path := createTestFixtureFile(t, "empty.yaml", "")

	coupons, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), path)

	require.NoError(t, err)
	assert.NotNil(t, coupons)
	assert.Empty(t, coupons)
}

func TestFileLoader_Load_Errors(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	t.Run("Missing file", func(t *testing.T) {
		_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open fixture file")
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := createTestFixtureFile(t, "bad.yaml", "coupons: [ {code: ")
		_, err := loader.Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode fixtures")
	})

	t.Run("Not actually gzipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain.yaml.gz")
		require.NoError(t, os.WriteFile(path, []byte(sampleFixtures), 0o600))

		_, err := loader.Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gzip")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		path := createTestFixtureFile(t, "fixtures.yaml", sampleFixtures)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := loader.Load(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
