package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrProductNameRequired = errors.New("product_name required")
	ErrCompetitorRequired  = errors.New("competitor required")
	ErrNegativePrice       = errors.New("prices must be non-negative")
)

// PriceRecord is one manually entered price comparison. Records are
// immutable once appended; the difference is always derived from the two
// price fields at creation time.
type PriceRecord struct {
	ID                   string    `json:"id"`
	ProductName          string    `json:"product_name"`
	SKU                  string    `json:"sku"`
	YourPriceCents       int64     `json:"your_price_cents"`
	Competitor           string    `json:"competitor"`
	CompetitorPriceCents int64     `json:"competitor_price_cents"`
	PriceDifferenceCents int64     `json:"price_difference_cents"`
	DateAdded            time.Time `json:"date_added"`
}

// Cents converts a decimal price to integer cents, rounding half away
// from zero. This is the only place decimal input is rounded; everything
// downstream is exact integer arithmetic.
func Cents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// FormatCents renders cents as a 2-dp decimal string, e.g. -50 -> "-0.50".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func NewRecord(id, productName, sku string, yourPrice, competitorPrice float64, competitor string, now time.Time) (PriceRecord, error) {
	productName = strings.TrimSpace(productName)
	competitor = strings.TrimSpace(competitor)
	sku = strings.TrimSpace(sku)

	if productName == "" {
		return PriceRecord{}, ErrProductNameRequired
	}
	if competitor == "" {
		return PriceRecord{}, ErrCompetitorRequired
	}
	if yourPrice < 0 || competitorPrice < 0 {
		return PriceRecord{}, ErrNegativePrice
	}

	yours := Cents(yourPrice)
	theirs := Cents(competitorPrice)

	return PriceRecord{
		ID:                   id,
		ProductName:          productName,
		SKU:                  sku,
		YourPriceCents:       yours,
		Competitor:           competitor,
		CompetitorPriceCents: theirs,
		PriceDifferenceCents: yours - theirs,
		DateAdded:            now.UTC(),
	}, nil
}
