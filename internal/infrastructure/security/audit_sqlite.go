package security

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asknix/asknix/internal/domain"
)

// SQLiteAuditLog persists violations in an append-only sqlite table, trimmed
// to maxRecords rows. Writes degrade silently when the database cannot be
// opened; the in-memory ring still has the data.
type SQLiteAuditLog struct {
	db         *sql.DB
	path       string
	maxRecords int
	mu         sync.Mutex
}

// NewSQLiteAuditLog creates (or opens) the audit database.
func NewSQLiteAuditLog(path string, maxRecords int) *SQLiteAuditLog {
	if path == "" {
		path = filepath.Join(userHomeDir(), ".asknix", "audit", "audit.db")
	}
	if maxRecords <= 0 {
		maxRecords = 10000
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	store := &SQLiteAuditLog{path: path, maxRecords: maxRecords}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.db = nil
	}
	return store
}

func (s *SQLiteAuditLog) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS violations (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		profile_id TEXT,
		category TEXT,
		severity TEXT,
		detail TEXT
	);`)
	return err
}

// Append inserts a record and trims the table to the configured bound.
func (s *SQLiteAuditLog) Append(rec domain.AuditRecord) {
	if s.db == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO violations (id, timestamp, profile_id, category, severity, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.Format(time.RFC3339),
		rec.ProfileID,
		string(rec.Category),
		string(rec.Severity),
		rec.Detail,
	)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(`DELETE FROM violations WHERE id NOT IN (
		SELECT id FROM violations ORDER BY datetime(timestamp) DESC LIMIT ?)`, s.maxRecords)
}

// Recent returns up to limit records, newest first.
func (s *SQLiteAuditLog) Recent(limit int) ([]domain.AuditRecord, error) {
	if s.db == nil {
		return nil, os.ErrInvalid
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, timestamp, profile_id, category, severity, detail
		FROM violations ORDER BY datetime(timestamp) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var ts, category, severity string
		if err := rows.Scan(&rec.ID, &ts, &rec.ProfileID, &category, &severity, &rec.Detail); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Category = domain.ViolationCategory(category)
		rec.Severity = domain.Severity(severity)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Path returns the sqlite database path.
func (s *SQLiteAuditLog) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteAuditLog) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
