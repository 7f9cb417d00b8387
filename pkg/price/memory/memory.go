// Package memory implements an in-memory price store.
package memory

import (
	"context"
	"sync"

	"stockdata/pkg/price"
)

var _ price.Store = (*Store)(nil)

// Store provides an in-memory implementation of price.Store.
type Store struct {
	mu      sync.RWMutex
	records price.Dataset
}

// New creates a store seeded with a copy of ds.
func New(ds price.Dataset) *Store {
	return &Store{records: ds.Clone()}
}

// Load returns a copy of the stored dataset.
func (s *Store) Load(ctx context.Context) (price.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Clone(), nil
}

// Save replaces the stored dataset with a copy of ds.
func (s *Store) Save(ctx context.Context, ds price.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = ds.Clone()
	return nil
}
