package order

import (
	"context"
	"sync"
)

// MemoryStore keeps orders in memory. It backs tests and local runs
// without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends the record.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// ListAll returns a copy of the stored records in insertion order.
func (s *MemoryStore) ListAll(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
