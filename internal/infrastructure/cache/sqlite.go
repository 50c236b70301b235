package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asknix/asknix/internal/domain"
)

// persistentTier keeps entries across CLI invocations in a sqlite database.
// Like the audit store, it degrades silently when the database cannot be
// opened: the memory tier keeps working and only persistence is lost.
type persistentTier struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

func newPersistentTier(dir string) *persistentTier {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &persistentTier{}
		}
		dir = filepath.Join(home, ".asknix", "cache")
	}
	_ = os.MkdirAll(dir, 0o755)
	tier := &persistentTier{path: filepath.Join(dir, "responses.db")}
	db, err := sql.Open("sqlite", tier.path)
	if err != nil {
		return tier
	}
	tier.db = db
	if err := tier.init(); err != nil {
		tier.db = nil
	}
	return tier
}

func (p *persistentTier) init() error {
	_, err := p.db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		kind TEXT,
		created_at TEXT,
		ttl_seconds INTEGER,
		value TEXT
	);`)
	return err
}

func (p *persistentTier) get(key string, now time.Time) (domain.CacheEntry, bool) {
	if p.db == nil {
		return domain.CacheEntry{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	row := p.db.QueryRow(`SELECT key, kind, created_at, ttl_seconds, value FROM responses WHERE key = ?`, key)
	var entry domain.CacheEntry
	var kind, createdAt, value string
	if err := row.Scan(&entry.Key, &kind, &createdAt, &entry.TTLSeconds, &value); err != nil {
		return domain.CacheEntry{}, false
	}
	entry.Kind = domain.IntentKind(kind)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(value), &entry.Value); err != nil {
		return domain.CacheEntry{}, false
	}
	if entry.Expired(now) {
		_, _ = p.db.Exec(`DELETE FROM responses WHERE key = ?`, key)
		return domain.CacheEntry{}, false
	}
	return entry, true
}

func (p *persistentTier) put(entry domain.CacheEntry) error {
	if p.db == nil {
		return nil
	}
	value, err := json.Marshal(entry.Value)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.db.Exec(`INSERT INTO responses (key, kind, created_at, ttl_seconds, value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET kind=excluded.kind, created_at=excluded.created_at,
			ttl_seconds=excluded.ttl_seconds, value=excluded.value`,
		entry.Key, string(entry.Kind), entry.CreatedAt.Format(time.RFC3339Nano), entry.TTLSeconds, string(value))
	if err != nil {
		return fmt.Errorf("persist cache entry: %w", err)
	}
	return nil
}

func (p *persistentTier) clear() error {
	if p.db == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.db.Exec(`DELETE FROM responses`)
	return err
}

// cleanup drops rows whose TTL has elapsed and reports the count.
func (p *persistentTier) cleanup(now time.Time) (int, error) {
	if p.db == nil {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	res, err := p.db.Exec(
		`DELETE FROM responses WHERE datetime(created_at, '+' || ttl_seconds || ' seconds') <= datetime(?)`,
		now.Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (p *persistentTier) count() int {
	if p.db == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	if err := p.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (p *persistentTier) close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
