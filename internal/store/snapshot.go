package store

import (
	"sync"
	"time"

	"github.com/deepdiver/funnelreport/internal/models"
)

// Snapshot holds the last successfully normalized population. Report
// requests read a copy of it, so concurrent reports and a concurrent
// ingest never share mutable state.
type Snapshot struct {
	mu       sync.RWMutex
	recs     []models.FunnelRecord
	rawCount int
	loadedAt time.Time
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Replace swaps in a freshly normalized population. rawCount is the
// source row count before normalization, kept for reconciliation.
func (s *Snapshot) Replace(recs []models.FunnelRecord, rawCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = recs
	s.rawCount = rawCount
	s.loadedAt = time.Now().UTC()
}

// Records returns a copy of the current population.
func (s *Snapshot) Records() []models.FunnelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FunnelRecord, len(s.recs))
	copy(out, s.recs)
	return out
}

// Info reports the population size, the source row count and when the
// snapshot was loaded.
func (s *Snapshot) Info() (records int, rawRows int, loadedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs), s.rawCount, s.loadedAt
}

// Empty reports whether anything has been loaded yet.
func (s *Snapshot) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs) == 0
}
