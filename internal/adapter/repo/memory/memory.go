// Package memory keeps generation records in a bounded in-process buffer.
package memory

import (
	"context"
	"sync"

	"markovmap/internal/run"
)

// DefaultCapacity bounds a Store created with a non-positive capacity.
const DefaultCapacity = 256

// Store keeps the most recent records, dropping the oldest when full. It is
// safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	records []run.Record
	next    int
	full    bool
}

var _ run.Store = (*Store)(nil)

// NewStore returns a store holding up to capacity records.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{records: make([]run.Record, capacity)}
}

// Save appends r, evicting the oldest record when the buffer is full.
func (s *Store) Save(_ context.Context, r run.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[s.next] = r
	s.next = (s.next + 1) % len(s.records)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns everything held.
func (s *Store) Recent(_ context.Context, limit int) ([]run.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	if s.full {
		n = len(s.records)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]run.Record, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.next - 1 - i + len(s.records)) % len(s.records)
		out = append(out, s.records[idx])
	}
	return out, nil
}
