// Package memory holds the process-lifetime review log. Records are never
// persisted, updated, or pruned; they live until the process exits.
package memory

import (
	"sync"

	"review_analytics/internal/domain"
)

type Store struct {
	mu      sync.Mutex
	records []domain.ReviewRecord
}

func New() *Store { return &Store{} }

func (s *Store) Append(r domain.ReviewRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// Snapshot returns a copy so readers never alias the backing array while a
// concurrent append grows it.
func (s *Store) Snapshot() []domain.ReviewRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ReviewRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
