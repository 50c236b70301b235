package domain

// Config mirrors ~/.asknix/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Security            SecuritySettings  `yaml:"security"`
	Cache               CacheSettings     `yaml:"cache"`
	Execution           ExecutionSettings `yaml:"execution"`
	Personas            []PersonaStyle    `yaml:"personas"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultPersona string `yaml:"default_persona"`
	DefaultProfile string `yaml:"default_profile"`
}

// SecuritySettings defines validator and rate-limiter behavior.
type SecuritySettings struct {
	Enabled          bool   `yaml:"enabled"`
	RulesFile        string `yaml:"rules_file"`
	RequestsPerMin   int    `yaml:"requests_per_minute"`
	Burst            int    `yaml:"burst"`
	AuditMaxRecords  int    `yaml:"audit_max_records"`
	AuditMemoryBound int    `yaml:"audit_memory_bound"`
}

// CacheSettings controls the two-tier cache.
type CacheSettings struct {
	Dir              string `yaml:"dir"`
	MemoryMaxEntries int    `yaml:"memory_max_entries"`
}

// ExecutionSettings controls how toolchain commands run.
type ExecutionSettings struct {
	TimeoutSeconds int  `yaml:"timeout"`
	PreferNative   bool `yaml:"prefer_native"`
}

// PersonaByName resolves a configured persona, falling back to the default
// style when the name is unknown or empty.
func (c Config) PersonaByName(name string) PersonaStyle {
	if name == "" {
		name = c.Preferences.DefaultPersona
	}
	for _, p := range c.Personas {
		if p.Name == name {
			return p
		}
	}
	return DefaultPersona()
}
