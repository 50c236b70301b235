package domain_test

import (
	"testing"
	"time"

	"github.com/asknix/asknix/internal/domain"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Install Firefox", "install firefox"},
		{"collapses whitespace", "  install \t  firefox  ", "install firefox"},
		{"strips trailing punctuation", "install firefox, please!!", "install firefox, please"},
		{"empty input", "   ", ""},
		{"interior punctuation kept", "what's nixpkgs#firefox?", "what's nixpkgs#firefox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	base := domain.CacheKey("install firefox", "default", false)
	if len(base) != 16 {
		t.Fatalf("key length = %d, want 16", len(base))
	}
	if domain.CacheKey("  INSTALL   firefox!  ", "default", false) != base {
		t.Error("normalized variants should share a key")
	}
	if domain.CacheKey("install firefox", "work", false) == base {
		t.Error("profile must be part of the key")
	}
	if domain.CacheKey("install firefox", "default", true) == base {
		t.Error("dry-run flag must be part of the key")
	}
}

func TestCacheEntryExpired(t *testing.T) {
	now := time.Now()
	entry := domain.CacheEntry{CreatedAt: now, TTLSeconds: 60}

	if entry.Expired(now.Add(30 * time.Second)) {
		t.Error("entry should be fresh inside its TTL")
	}
	if !entry.Expired(now.Add(2 * time.Minute)) {
		t.Error("entry should expire after its TTL")
	}
	if !(domain.CacheEntry{CreatedAt: now, TTLSeconds: 0}).Expired(now) {
		t.Error("zero TTL means never fresh")
	}
}

func TestCacheTTLPerKind(t *testing.T) {
	if domain.CacheTTL(domain.IntentRollback) != 0 {
		t.Error("rollback must never be cached")
	}
	if domain.CacheTTL(domain.IntentUnknown) != 0 {
		t.Error("unknown intents must never be cached")
	}
	if domain.CacheTTL(domain.IntentSearch) <= domain.CacheTTL(domain.IntentList) {
		t.Error("search results should outlive list results")
	}
	if domain.CacheTTL(domain.IntentUpdate) >= domain.CacheTTL(domain.IntentList) {
		t.Error("update state is more volatile than list state")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !domain.SeverityCritical.MoreSevere(domain.SeverityHigh) {
		t.Error("critical should outrank high")
	}
	if domain.SeverityLow.MoreSevere(domain.SeverityMedium) {
		t.Error("low should not outrank medium")
	}
	if domain.SeverityHigh.MoreSevere(domain.SeverityHigh) {
		t.Error("equal severities are not more severe")
	}
}

func TestIntentRequiresEntity(t *testing.T) {
	requires := map[domain.IntentKind]bool{
		domain.IntentInstall:  true,
		domain.IntentRemove:   true,
		domain.IntentUpdate:   false,
		domain.IntentList:     false,
		domain.IntentRollback: false,
	}
	for kind, want := range requires {
		if got := kind.RequiresEntity(); got != want {
			t.Errorf("%s.RequiresEntity() = %v, want %v", kind, got, want)
		}
	}
}

func TestCommandSpecRendered(t *testing.T) {
	spec := domain.CommandSpec{
		Executable: "nix",
		Args:       []string{"profile", "install", "nixpkgs#firefox"},
	}
	want := "nix profile install nixpkgs#firefox"
	if got := spec.Rendered(); got != want {
		t.Errorf("Rendered() = %q, want %q", got, want)
	}
}

func TestPersonaByName(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultPersona: "minimal"},
		Personas: []domain.PersonaStyle{
			{Name: "minimal", Verbosity: domain.VerbosityMinimal},
			{Name: "expert", Verbosity: domain.VerbosityDetailed},
		},
	}

	if got := cfg.PersonaByName("expert"); got.Verbosity != domain.VerbosityDetailed {
		t.Errorf("expected expert persona, got %+v", got)
	}
	if got := cfg.PersonaByName(""); got.Name != "minimal" {
		t.Errorf("empty name should resolve the configured default, got %q", got.Name)
	}
	if got := cfg.PersonaByName("nope"); got.Name != domain.DefaultPersona().Name {
		t.Errorf("unknown name should fall back to the built-in default, got %q", got.Name)
	}
}
