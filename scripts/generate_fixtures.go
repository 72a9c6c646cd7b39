package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"coupon-manager/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// generateFixtures writes a gzipped YAML fixture file with n coupons spread
// over a few categories, for exercising the seed command at volume.
//
//	go run ./scripts -n 500 -out data/coupons/bulk.yaml.gz
func main() {
	n := flag.Int("n", 200, "number of coupons to generate")
	out := flag.String("out", "data/coupons/bulk.yaml.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeFixtureFile(*out, generate(*n, time.Now().UTC())); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d coupons\n", *out, *n)
}

var categories = []string{"General", "Seasonal", "Electronics", "Fashion", "Grocery"}

func generate(n int, now time.Time) []model.CouponRequest {
	coupons := make([]model.CouponRequest, 0, n)

	for i := range n {
		category := categories[i%len(categories)]
		description := fmt.Sprintf("%s deal number %d", category, i+1)
		discount := decimal.NewFromInt(int64(5 + i%50))
		minimum := decimal.NewFromInt(int64(i%10) * 10)
		limit := model.UnlimitedUsage
		if i%3 != 0 {
			limit = 10 * (i%7 + 1)
		}

		coupons = append(coupons, model.CouponRequest{
			Code:            fmt.Sprintf("BULK%05d", i+1),
			Description:     &description,
			DiscountValue:   &discount,
			MinimumPurchase: &minimum,
			ValidFrom:       now.AddDate(0, 0, -(i % 30)).Format("2006-01-02"),
			ValidUntil:      now.AddDate(0, 1+i%12, 0).Format("2006-01-02"),
			UsageLimit:      &limit,
			Category:        &category,
		})
	}

	return coupons
}

func writeFixtureFile(filePath string, coupons []model.CouponRequest) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := yaml.NewEncoder(gzipWriter)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]model.CouponRequest{"coupons": coupons}); err != nil {
		return fmt.Errorf("failed to write fixtures: %w", err)
	}

	return enc.Close()
}
