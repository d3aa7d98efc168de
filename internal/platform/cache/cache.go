// Package cache stores normalized remote records so repeated list and detail
// requests do not hit the clinical API every time.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get reports a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Cache. Expired entries are dropped lazily on Get
// and when the entry count crosses maxEntries.
type Memory struct {
	mu         sync.Mutex
	items      map[string]memoryItem
	maxEntries int
	now        func() time.Time
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &Memory{
		items:      make(map[string]memoryItem),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		return nil, false, nil
	}
	return item.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[key]; !exists && len(m.items) >= m.maxEntries {
		m.evictLocked()
	}
	item := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = item
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// evictLocked drops expired entries, then the one closest to expiry if the
// cache is still full.
func (m *Memory) evictLocked() {
	now := m.now()
	var victim string
	var victimAt time.Time
	for k, it := range m.items {
		if !it.expiresAt.IsZero() && !now.Before(it.expiresAt) {
			delete(m.items, k)
			continue
		}
		if victim == "" || (!it.expiresAt.IsZero() && (victimAt.IsZero() || it.expiresAt.Before(victimAt))) {
			victim, victimAt = k, it.expiresAt
		}
	}
	if len(m.items) >= m.maxEntries && victim != "" {
		delete(m.items, victim)
	}
}
