package ledger

import (
	"context"
	"sync"
)

// MemStore holds the session's records in memory. Nothing survives a
// restart; that is the intended scope for a single dashboard session.
type MemStore struct {
	mu   sync.RWMutex
	recs []PriceRecord
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Append(ctx context.Context, rec PriceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = append(s.recs, rec)
	return nil
}

func (s *MemStore) List(ctx context.Context) ([]PriceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PriceRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}
