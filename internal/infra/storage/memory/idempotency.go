package memory

import (
	"context"
	"sync"
	"time"

	"domoreserva/internal/app/middleware"
)

// IdempotencyStore keeps replay records in memory with a retention
// window so abandoned keys do not accumulate forever.
type IdempotencyStore struct {
	mu        sync.RWMutex
	items     map[string]middleware.IdempotencyRecord
	retention time.Duration
}

func NewIdempotencyStore(retention time.Duration) *IdempotencyStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &IdempotencyStore{
		items:     make(map[string]middleware.IdempotencyRecord),
		retention: retention,
	}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[key]
	if ok && time.Since(rec.OccurredAt) > s.retention {
		return middleware.IdempotencyRecord{}, false, nil
	}
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.retention)
	for key, old := range s.items {
		if old.OccurredAt.Before(cutoff) {
			delete(s.items, key)
		}
	}
	s.items[rec.Key] = rec
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
