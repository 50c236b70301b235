// Package config loads the YAML configuration and writes the commented
// default file on first run.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/asknix/asknix/assets"
	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// FileLoader loads YAML configuration from ~/.asknix/config.yaml
// (overridable via ASKNIX_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: write the annotated default file and load it.
			if err := os.WriteFile(path, assets.ConfigDefaults, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.ConfigDefaults
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("ASKNIX_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".asknix", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// DefaultConfig is the configuration written on first run and the baseline
// for hydrating sparse files.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			DefaultPersona: "friendly",
			DefaultProfile: "default",
		},
		Security: domain.SecuritySettings{
			Enabled:          true,
			RulesFile:        filepath.Join(userHomeDir(), ".asknix", "guardrail.yaml"),
			RequestsPerMin:   30,
			Burst:            5,
			AuditMaxRecords:  10000,
			AuditMemoryBound: 1000,
		},
		Cache: domain.CacheSettings{
			Dir:              filepath.Join(userHomeDir(), ".asknix", "cache"),
			MemoryMaxEntries: 256,
		},
		Execution: domain.ExecutionSettings{
			TimeoutSeconds: 120,
			PreferNative:   true,
		},
		Personas: defaultPersonas(),
	}
}

func defaultPersonas() []domain.PersonaStyle {
	return []domain.PersonaStyle{
		{Name: "friendly", Verbosity: domain.VerbosityNormal, JargonOK: true, MaxSentenceWords: 20},
		{Name: "minimal", Verbosity: domain.VerbosityMinimal, JargonOK: true, MaxSentenceWords: 12},
		{Name: "grandma", Verbosity: domain.VerbosityNormal, SimpleWords: true, MaxSentenceWords: 12},
		{Name: "expert", Verbosity: domain.VerbosityDetailed, JargonOK: true, MaxSentenceWords: 40},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	base := DefaultConfig()
	if cfg.Preferences.DefaultPersona == "" {
		cfg.Preferences.DefaultPersona = base.Preferences.DefaultPersona
	}
	if cfg.Preferences.DefaultProfile == "" {
		cfg.Preferences.DefaultProfile = base.Preferences.DefaultProfile
	}
	if cfg.Security.RequestsPerMin == 0 {
		cfg.Security.RequestsPerMin = base.Security.RequestsPerMin
	}
	if cfg.Security.Burst == 0 {
		cfg.Security.Burst = base.Security.Burst
	}
	if cfg.Security.AuditMaxRecords == 0 {
		cfg.Security.AuditMaxRecords = base.Security.AuditMaxRecords
	}
	if cfg.Security.AuditMemoryBound == 0 {
		cfg.Security.AuditMemoryBound = base.Security.AuditMemoryBound
	}
	if cfg.Cache.MemoryMaxEntries == 0 {
		cfg.Cache.MemoryMaxEntries = base.Cache.MemoryMaxEntries
	}
	if cfg.Execution.TimeoutSeconds == 0 {
		cfg.Execution.TimeoutSeconds = base.Execution.TimeoutSeconds
	}
	if len(cfg.Personas) == 0 {
		cfg.Personas = base.Personas
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
