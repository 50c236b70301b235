package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asknix/asknix/internal/domain"
)

func TestLoadWritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.ConfigFormatVersion)
	assert.Equal(t, "friendly", cfg.Preferences.DefaultPersona)
	assert.Equal(t, 30, cfg.Security.RequestsPerMin)
	assert.True(t, cfg.Execution.PreferNative)

	_, err = os.Stat(path)
	assert.NoError(t, err, "default config should be written to disk")
}

func TestLoadHydratesSparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `preferences:
  default_persona: grandma
security:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "grandma", cfg.Preferences.DefaultPersona)
	assert.Equal(t, "default", cfg.Preferences.DefaultProfile)
	assert.Equal(t, 30, cfg.Security.RequestsPerMin)
	assert.Equal(t, 120, cfg.Execution.TimeoutSeconds)
	assert.NotEmpty(t, cfg.Personas)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elsewhere.yaml")
	content := `preferences:
  default_profile: work
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ASKNIX_CONFIG", path)

	cfg, err := NewFileLoader("").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "work", cfg.Preferences.DefaultProfile)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::not yaml::"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestPersonaByName(t *testing.T) {
	cfg := DefaultConfig()

	grandma := cfg.PersonaByName("grandma")
	assert.True(t, grandma.SimpleWords)

	fallback := cfg.PersonaByName("nonexistent")
	assert.Equal(t, domain.DefaultPersona().Name, fallback.Name)

	byDefault := cfg.PersonaByName("")
	assert.Equal(t, "friendly", byDefault.Name)
}
