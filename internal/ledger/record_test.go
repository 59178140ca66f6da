package ledger_test

import (
	"errors"
	"testing"
	"time"

	"PriceDesk/internal/ledger"
)

func TestNewRecord_ComputesDifference(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	rec, err := ledger.NewRecord("r_1", "Widget", "W1", 9.99, 10.49, "ACME", now)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	if rec.YourPriceCents != 999 {
		t.Errorf("your_price_cents = %d, want 999", rec.YourPriceCents)
	}
	if rec.CompetitorPriceCents != 1049 {
		t.Errorf("competitor_price_cents = %d, want 1049", rec.CompetitorPriceCents)
	}
	if rec.PriceDifferenceCents != -50 {
		t.Errorf("price_difference_cents = %d, want -50", rec.PriceDifferenceCents)
	}
	if got := ledger.FormatCents(rec.PriceDifferenceCents); got != "-0.50" {
		t.Errorf("FormatCents(diff) = %q, want %q", got, "-0.50")
	}
}

func TestNewRecord_Validation(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name            string
		productName     string
		competitor      string
		yourPrice       float64
		competitorPrice float64
		wantErr         error
	}{
		{"missing product name", "  ", "ACME", 1, 1, ledger.ErrProductNameRequired},
		{"missing competitor", "Widget", "", 1, 1, ledger.ErrCompetitorRequired},
		{"negative your price", "Widget", "ACME", -0.01, 1, ledger.ErrNegativePrice},
		{"negative competitor price", "Widget", "ACME", 1, -5, ledger.ErrNegativePrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.NewRecord("r_x", tc.productName, "SKU", tc.yourPrice, tc.competitorPrice, tc.competitor, now)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCents_RoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{9.99, 999},
		{0.005, 1},
		{1.005, 101},
		{10.494, 1049},
	}

	for _, tc := range cases {
		if got := ledger.Cents(tc.in); got != tc.want {
			t.Errorf("Cents(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{999, "9.99"},
		{-50, "-0.50"},
		{-1200, "-12.00"},
		{5, "0.05"},
	}

	for _, tc := range cases {
		if got := ledger.FormatCents(tc.in); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
