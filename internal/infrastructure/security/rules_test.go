package security

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asknix/asknix/internal/domain"
)

func TestLoadPolicyDefaults(t *testing.T) {
	policy, err := LoadPolicy("/nonexistent/guardrail.yaml")
	require.NoError(t, err)
	assert.True(t, policy.AllowedExecutables["nix"])
	assert.NotEmpty(t, policy.Patterns)
	assert.Equal(t, 500, policy.MaxInputLength)
}

func TestLoadPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrail.yaml")
	content := `rules:
  allowed_executables:
    - nix
  danger_patterns:
    - pattern: "forbidden-word"
      category: injection
      severity: low
      message: "Forbidden word"
      remediation: "Rephrase the request"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	require.Len(t, policy.Patterns, 1)
	assert.Equal(t, "Forbidden word", policy.Patterns[0].Rule.Message)
	assert.False(t, policy.AllowedExecutables["nix-env"])

	v := NewValidator(policy, nil, nil, nil)
	result := v.Validate("default", "please install forbidden-word now")
	require.False(t, result.OK)
	assert.Equal(t, domain.SeverityLow, result.Violation.Severity)
}

func TestLoadPolicyRejectsBadRegex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrail.yaml")
	content := `rules:
  danger_patterns:
    - pattern: "(["
      category: injection
      severity: high
      message: "Broken"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	_, err := LoadPolicy(path)
	assert.Error(t, err)
}

func TestParseSeverityFallsBackToMedium(t *testing.T) {
	assert.Equal(t, domain.SeverityMedium, parseSeverity("unheard-of"))
	assert.Equal(t, domain.SeverityCritical, parseSeverity("CRITICAL"))
}

func TestSQLiteAuditLogTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store := NewSQLiteAuditLog(path, 3)
	defer store.Close()

	base := time.Now()
	for i := 0; i < 5; i++ {
		rec := record(i)
		rec.Timestamp = base.Add(time.Duration(i) * time.Second)
		store.Append(rec)
	}

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec-4", records[0].ID)
	assert.Equal(t, "rec-2", records[2].ID)
}
