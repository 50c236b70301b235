package security

import (
	"sync"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// MemoryAuditLog is a bounded in-memory ring of recent violations. It backs
// the audit viewer when the persistent store is unavailable and feeds the
// persistent store when one is attached.
type MemoryAuditLog struct {
	mu      sync.Mutex
	records []domain.AuditRecord
	bound   int
	sink    *SQLiteAuditLog
}

// NewMemoryAuditLog creates a ring holding at most bound records.
func NewMemoryAuditLog(bound int, sink *SQLiteAuditLog) *MemoryAuditLog {
	if bound <= 0 {
		bound = 1000
	}
	return &MemoryAuditLog{bound: bound, sink: sink}
}

// Append implements ports.AuditLog. Oldest records are dropped once the
// bound is reached; persistence is best-effort.
func (l *MemoryAuditLog) Append(rec domain.AuditRecord) {
	l.mu.Lock()
	l.records = append(l.records, rec)
	if len(l.records) > l.bound {
		l.records = l.records[len(l.records)-l.bound:]
	}
	l.mu.Unlock()

	if l.sink != nil {
		l.sink.Append(rec)
	}
}

// Recent returns up to limit records, newest first.
func (l *MemoryAuditLog) Recent(limit int) ([]domain.AuditRecord, error) {
	if l.sink != nil {
		if records, err := l.sink.Recent(limit); err == nil && len(records) > 0 {
			return records, nil
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.records)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.AuditRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.records[i])
	}
	return out, nil
}

var _ ports.AuditLog = (*MemoryAuditLog)(nil)
