package security

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asknix/asknix/internal/domain"
)

func record(i int) domain.AuditRecord {
	return domain.AuditRecord{
		ID:        fmt.Sprintf("rec-%d", i),
		Timestamp: time.Now(),
		ProfileID: "default",
		Category:  domain.CategoryInjection,
		Severity:  domain.SeverityHigh,
		Detail:    "Command chaining",
	}
}

func TestRateLimiterRefill(t *testing.T) {
	current := time.Now()
	r := NewRateLimiter(60, 2)
	r.now = func() time.Time { return current }

	ok, _ := r.Allow("id")
	require.True(t, ok)
	ok, _ = r.Allow("id")
	require.True(t, ok)

	ok, wait := r.Allow("id")
	require.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, time.Second)

	// One token per second at 60/min.
	current = current.Add(time.Second)
	ok, _ = r.Allow("id")
	assert.True(t, ok)
}

func TestRateLimiterBurstCap(t *testing.T) {
	current := time.Now()
	r := NewRateLimiter(60, 2)
	r.now = func() time.Time { return current }

	// A long idle period must not accumulate more than the burst.
	current = current.Add(time.Hour)
	for i := 0; i < 2; i++ {
		ok, _ := r.Allow("id")
		require.True(t, ok, "request %d", i)
	}
	ok, _ := r.Allow("id")
	assert.False(t, ok)
}

func TestRateLimiterDisabled(t *testing.T) {
	r := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		ok, _ := r.Allow("id")
		require.True(t, ok)
	}
}

func TestMemoryAuditLogBound(t *testing.T) {
	l := NewMemoryAuditLog(3, nil)
	for i := 0; i < 5; i++ {
		l.Append(record(i))
	}
	records, err := l.Recent(10)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	// Newest first.
	assert.Equal(t, "rec-4", records[0].ID)
	assert.Equal(t, "rec-2", records[2].ID)
}
