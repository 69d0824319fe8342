// Package cache provides a generic in-memory TTL store used to memoize
// aggregated search responses. Expired entries are logically absent the
// moment their TTL elapses; physical eviction happens lazily on read and
// through an optional background sweeper.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	writtenAt time.Time
	ttl       time.Duration
}

func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.writtenAt) >= e.ttl
}

// Store is a concurrency-safe TTL key→value map. Concurrent Get/Set on
// different keys never interfere; concurrent Set on the same key is
// last-write-wins.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]

	stopOnce sync.Once
	stopCh   chan struct{}

	// now is swappable for TTL tests.
	now func() time.Time
}

// New creates an empty store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]entry[V]),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}
}

// Get returns the live value for key. A value whose TTL has elapsed is
// absent regardless of whether the sweeper has run; the read also evicts it.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if current, ok := s.entries[key]; ok && current.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. Overwriting resets the TTL clock.
func (s *Store[K, V]) Set(key K, value V, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, writtenAt: s.now(), ttl: ttl}
	s.mu.Unlock()
}

// Delete removes key if present.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of physically present entries, expired or not.
// Intended for stats endpoints, not correctness decisions.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartSweeper launches a background goroutine that periodically evicts
// expired entries. Call Stop to terminate it.
func (s *Store[K, V]) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

// Stop terminates the sweeper, if one was started. Safe to call more than
// once.
func (s *Store[K, V]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *Store[K, V]) sweep() {
	now := s.now()
	s.mu.Lock()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}
