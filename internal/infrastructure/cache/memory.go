package cache

import (
	"sync"
	"time"

	"github.com/asknix/asknix/internal/domain"
)

// memoryTier is the fast in-process tier. A plain mutex-guarded map is
// enough here: the CLI issues one lookup per invocation and the map is
// bounded by maxEntries.
type memoryTier struct {
	mu      sync.Mutex
	entries map[string]domain.CacheEntry
	max     int
}

func newMemoryTier(max int) *memoryTier {
	if max <= 0 {
		max = 256
	}
	return &memoryTier{entries: make(map[string]domain.CacheEntry), max: max}
}

func (m *memoryTier) get(key string, now time.Time) (domain.CacheEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return domain.CacheEntry{}, false
	}
	if entry.Expired(now) {
		delete(m.entries, key)
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// put inserts the entry, evicting the oldest one when the tier is full.
func (m *memoryTier) put(entry domain.CacheEntry) (evicted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[entry.Key]; !exists && len(m.entries) >= m.max {
		var oldestKey string
		var oldest time.Time
		for k, e := range m.entries {
			if oldestKey == "" || e.CreatedAt.Before(oldest) {
				oldestKey, oldest = k, e.CreatedAt
			}
		}
		delete(m.entries, oldestKey)
		evicted = true
	}
	m.entries[entry.Key] = entry
	return evicted
}

func (m *memoryTier) clear() {
	m.mu.Lock()
	m.entries = make(map[string]domain.CacheEntry)
	m.mu.Unlock()
}

// cleanup removes expired entries and reports how many were dropped.
func (m *memoryTier) cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.entries {
		if e.Expired(now) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

func (m *memoryTier) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
