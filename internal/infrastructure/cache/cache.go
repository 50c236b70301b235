// Package cache implements the two-tier response cache: a bounded in-memory
// map in front of a sqlite database that survives across CLI invocations.
// Reads promote persistent hits into memory; writes land in memory
// synchronously and persist in the background.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// Key is the canonical key derivation, see domain.CacheKey.
func Key(text, profileID string, dryRun bool) string {
	return domain.CacheKey(text, profileID, dryRun)
}

// TwoTier implements ports.CacheStore.
type TwoTier struct {
	memory  *memoryTier
	persist *persistentTier
	logger  ports.Logger
	now     func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	pending   sync.WaitGroup
}

// New builds the cache. dir is the sqlite directory, defaulting to
// ~/.asknix/cache.
func New(dir string, memoryMax int, logger ports.Logger) *TwoTier {
	return &TwoTier{
		memory:  newMemoryTier(memoryMax),
		persist: newPersistentTier(dir),
		logger:  logger,
		now:     time.Now,
	}
}

// Get looks up a key in both tiers. A persistent hit is promoted into
// memory so the next lookup is served without touching the database.
func (c *TwoTier) Get(key string) (domain.CacheEntry, bool, error) {
	now := c.now()
	if entry, ok := c.memory.get(key, now); ok {
		c.hits.Add(1)
		return entry, true, nil
	}
	if entry, ok := c.persist.get(key, now); ok {
		if c.memory.put(entry) {
			c.evictions.Add(1)
		}
		c.hits.Add(1)
		return entry, true, nil
	}
	c.misses.Add(1)
	return domain.CacheEntry{}, false, nil
}

// Put stores the entry. Entries with no TTL are dropped: some results must
// never be replayed. Persistence happens in the background so the caller
// is not delayed by sqlite.
func (c *TwoTier) Put(entry domain.CacheEntry) error {
	if entry.TTLSeconds <= 0 {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = c.now()
	}
	if c.memory.put(entry) {
		c.evictions.Add(1)
	}
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if err := c.persist.put(entry); err != nil && c.logger != nil {
			c.logger.Warn("cache persist failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	return nil
}

// Clear empties both tiers.
func (c *TwoTier) Clear() error {
	c.pending.Wait()
	c.memory.clear()
	return c.persist.clear()
}

// Cleanup removes expired entries from both tiers and returns the total.
func (c *TwoTier) Cleanup() (int, error) {
	c.pending.Wait()
	now := c.now()
	removed := c.memory.cleanup(now)
	persisted, err := c.persist.cleanup(now)
	return removed + persisted, err
}

// Stats returns a snapshot of the counters.
func (c *TwoTier) Stats() domain.CacheStats {
	return domain.CacheStats{
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
		Evictions:      c.evictions.Load(),
		MemoryEntries:  c.memory.len(),
		PersistEntries: c.persist.count(),
	}
}

// Close waits for in-flight persists and releases the database.
func (c *TwoTier) Close() error {
	c.pending.Wait()
	return c.persist.close()
}

var _ ports.CacheStore = (*TwoTier)(nil)
