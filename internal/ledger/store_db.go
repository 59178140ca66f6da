package ledger

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Append(ctx context.Context, rec PriceRecord) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		// position is BIGSERIAL; insertion order is the ledger order.
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO price_records
				(id, product_name, sku, your_price_cents, competitor, competitor_price_cents, price_difference_cents, date_added)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, rec.ID, rec.ProductName, rec.SKU, rec.YourPriceCents, rec.Competitor, rec.CompetitorPriceCents, rec.PriceDifferenceCents, rec.DateAdded)
		return err
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]PriceRecord, error) {
	var out []PriceRecord

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, product_name, sku, your_price_cents, competitor, competitor_price_cents, price_difference_cents, date_added
			FROM price_records
			ORDER BY position ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]PriceRecord, 0, 16)
		for rows.Next() {
			var rec PriceRecord
			if err := rows.Scan(
				&rec.ID, &rec.ProductName, &rec.SKU,
				&rec.YourPriceCents, &rec.Competitor, &rec.CompetitorPriceCents,
				&rec.PriceDifferenceCents, &rec.DateAdded,
			); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
