package ledger

import "context"

// Store is an append-only record collection. List returns records in the
// order they were appended.
type Store interface {
	Ping(ctx context.Context) error
	Append(ctx context.Context, rec PriceRecord) error
	List(ctx context.Context) ([]PriceRecord, error)
}
