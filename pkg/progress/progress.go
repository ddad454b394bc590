// Package progress keeps the score history of finished quizzes per category.
package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one finished quiz.
type Record struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Score      float64   `json:"score"`
	RecordedAt time.Time `json:"date"`
}

// Persister stores records outside the process.
type Persister interface {
	AppendProgress(ctx context.Context, rec Record) error
	LoadProgress(ctx context.Context) ([]Record, error)
}

// Store holds the append-only history and the latest score per category.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	history []Record
	latest  map[string]float64

	persist Persister
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPersister sends every new record to p.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		latest: make(map[string]float64),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends a score for category and makes it the latest one.
// A persistence error is returned, but the record stays in memory.
func (s *Store) Record(ctx context.Context, category string, score float64) (Record, error) {
	rec := Record{
		ID:         uuid.NewString(),
		Category:   category,
		Score:      score,
		RecordedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.apply(rec)
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.AppendProgress(ctx, rec); err != nil {
			return rec, fmt.Errorf("persist progress %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

// Restore replaces the in-memory state with the persisted history.
// Without a persister it does nothing.
func (s *Store) Restore(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	recs, err := s.persist.LoadProgress(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].RecordedAt.Before(recs[j].RecordedAt) })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.latest = make(map[string]float64)
	for _, rec := range recs {
		s.apply(rec)
	}
	return nil
}

func (s *Store) apply(rec Record) {
	s.history = append(s.history, rec)
	s.latest[rec.Category] = rec.Score
}

// History returns all records, oldest first.
func (s *Store) History() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}

// Latest returns the most recent score of every category.
func (s *Store) Latest() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.latest))
	for k, v := range s.latest {
		out[k] = v
	}
	return out
}

// ByCategory returns the records of one category, oldest first.
func (s *Store) ByCategory(category string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.history {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}
