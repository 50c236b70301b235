package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// CacheKey derives the lookup key from the fields that determine a
// response: normalized text, profile and dry-run flag. Sixteen hex chars
// of sha256 keep keys short while collisions stay negligible at this
// scale.
func CacheKey(text, profileID string, dryRun bool) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%t", NormalizeText(text), profileID, dryRun)))
	return hex.EncodeToString(sum[:])[:16]
}

// CacheEntry associates a formatted Response with its key and TTL. Entries
// are owned by the cache and replaced wholesale, never mutated in place.
type CacheEntry struct {
	Key        string     `json:"key"`
	Value      Response   `json:"value"`
	Kind       IntentKind `json:"kind"`
	CreatedAt  time.Time  `json:"created_at"`
	TTLSeconds int        `json:"ttl_seconds"`
}

// Expired reports whether the entry is past its TTL at the given instant.
func (e CacheEntry) Expired(now time.Time) bool {
	if e.TTLSeconds <= 0 {
		return true
	}
	return now.Sub(e.CreatedAt) > time.Duration(e.TTLSeconds)*time.Second
}

// CacheStats mirrors the counters surfaced by `asknix cache stats`.
type CacheStats struct {
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
	Evictions      int64 `json:"evictions"`
	MemoryEntries  int   `json:"memory_entries"`
	PersistEntries int   `json:"persist_entries"`
}

// CacheTTL returns the time-to-live for a given intent kind. Volatile state
// caches briefly; search and metadata results keep for longer. Rollback is
// never cached.
func CacheTTL(kind IntentKind) time.Duration {
	switch kind {
	case IntentSearch, IntentInfo:
		return time.Hour
	case IntentList:
		return 5 * time.Minute
	case IntentUpdate:
		return time.Minute
	case IntentInstall, IntentRemove:
		return 5 * time.Minute
	case IntentRollback:
		return 0
	default:
		return 0
	}
}
