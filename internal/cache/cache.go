// Package cache provides the TTL key/value store backing the page fetcher.
//
// Keys are fully-qualified URLs and values are raw response bodies. An entry is
// visible only before its expiry time; after that it is treated as absent and
// the next reader refetches. There is deliberately no single-flight guard:
// concurrent readers of the same expired key may both fetch and both write, and
// the last write wins.
package cache

import (
	"sync"
	"time"
)

// Store is the cache backing a page fetcher. Put with ttl <= 0 stores an entry
// that is already stale, so subsequent Gets miss.
type Store interface {
	// Get retrieves a live value. ok is false if the key is unknown or expired.
	Get(key string) (value string, ok bool)

	// Put stores value under key, expiring after ttl.
	Put(key, value string, ttl time.Duration)
}

type entry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Memory is an in-process Store backed by a map.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
	}
}

// Get retrieves a value from the store if not expired.
// Expired entries are removed on access.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[key]
	if !exists {
		return "", false
	}

	if e.expired(time.Now()) {
		delete(m.entries, key)
		return "", false
	}

	return e.Value, true
}

// Put stores a value under key. A ttl of zero or less stores the entry
// already expired.
func (m *Memory) Put(key, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Sweep removes expired entries and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	now := time.Now()

	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of stored entries, including any not yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
