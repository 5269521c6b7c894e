package session

import (
	"sync"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// Entry pairs a completed analysis with the raw series it was computed from.
// The series is kept so charts can be rendered later without refetching.
type Entry struct {
	Analysis *model.Analysis
	Series   *model.PriceSeries
}

// Store keeps the analyses of the current run in memory. It replaces the
// ambient all-stocks list of earlier designs with explicit state passed to
// the menu layer. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries []Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add stores an analysis. Re-analyzing the same ticker over the same actual
// date range is not stored twice; Add reports whether the entry was stored.
func (s *Store) Add(analysis *model.Analysis, series *model.PriceSeries) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Analysis.SameRange(analysis) {
			return false
		}
	}
	s.entries = append(s.entries, Entry{Analysis: analysis, Series: series})
	return true
}

// List returns a snapshot of all entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry at index i (0-based), or false when out of range.
func (s *Store) Get(i int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
