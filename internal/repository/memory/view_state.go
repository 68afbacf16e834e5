// Package memory holds per-session UI state in a bounded in-process cache.
package memory

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pandey-solutions/saves/internal/domain/view"
)

type entry struct {
	state   view.State
	touched time.Time
}

// ViewStateStore keeps one view.State per session ID. The least recently
// used sessions are dropped once the cache is full.
type ViewStateStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, entry]
	now   func() time.Time
}

// NewViewStateStore creates a store holding at most size sessions
func NewViewStateStore(size int) (*ViewStateStore, error) {
	cache, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &ViewStateStore{cache: cache, now: time.Now}, nil
}

// Get returns the state for sessionID, or the initial state if none is stored
func (s *ViewStateStore) Get(sessionID string) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.cache.Get(sessionID); ok {
		return e.state
	}
	return view.Initial()
}

// Update applies fn to the current state of sessionID atomically. The new
// state is stored only when fn succeeds.
func (s *ViewStateStore) Update(sessionID string, fn func(view.State) (view.State, error)) (view.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := view.Initial()
	if e, ok := s.cache.Get(sessionID); ok {
		current = e.state
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	s.cache.Add(sessionID, entry{state: next, touched: s.now()})
	return next, nil
}

// EvictIdle removes sessions untouched since cutoff and returns how many were removed
func (s *ViewStateStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range s.cache.Keys() {
		e, ok := s.cache.Peek(key)
		if !ok || e.state.Loading {
			continue
		}
		if e.touched.Before(cutoff) {
			s.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked sessions
func (s *ViewStateStore) Len() int {
	return s.cache.Len()
}
