package format

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asknix/asknix/internal/domain"
)

func queryWith(persona domain.PersonaStyle) domain.Query {
	return domain.Query{Text: "install firefox", ProfileID: "default", Persona: persona}
}

func installIntent() domain.Intent {
	return domain.Intent{
		Kind:       domain.IntentInstall,
		Confidence: 1,
		Stage:      domain.StageExact,
		Entities:   map[string]string{"package": "firefox"},
	}
}

func installCommand() domain.CommandSpec {
	return domain.CommandSpec{
		Executable:  "nix",
		Args:        []string{"profile", "install", "nixpkgs#firefox"},
		Reversible:  true,
		Mutating:    true,
		Explanation: "install firefox into your profile",
	}
}

func TestSuccessPreviewIsStable(t *testing.T) {
	f := New(nil)
	q := queryWith(domain.DefaultPersona())
	q.DryRun = true
	res := domain.ExecutionResult{State: domain.StatePreview, Backend: "preview"}

	first := f.Success(q, installIntent(), installCommand(), res)
	second := f.Success(q, installIntent(), installCommand(), res)

	require.True(t, first.Success)
	assert.Contains(t, first.Message, "Would run: nix profile install nixpkgs#firefox")
	assert.Equal(t, "nix profile install nixpkgs#firefox", first.CommandPreview)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("preview responses differ (-first +second):\n%s", diff)
	}
}

func TestSuccessPreviewWarnsOnIrreversible(t *testing.T) {
	f := New(nil)
	spec := installCommand()
	spec.Reversible = false
	res := domain.ExecutionResult{State: domain.StatePreview}

	got := f.Success(queryWith(domain.DefaultPersona()), installIntent(), spec, res)
	assert.Contains(t, got.Message, "cannot be undone")
}

func TestSuccessVerbosityLevels(t *testing.T) {
	f := New(func(domain.IntentKind) string { return "Packages live in your own profile." })
	res := domain.ExecutionResult{
		State:         domain.StateSucceeded,
		Stdout:        "installed firefox-121.0\n",
		Backend:       "subprocess",
		DurationMS:    1234,
		RollbackToken: "tok-1",
	}

	minimal := domain.DefaultPersona()
	minimal.Verbosity = domain.VerbosityMinimal
	got := f.Success(queryWith(minimal), installIntent(), installCommand(), res)
	assert.Equal(t, "installed firefox-121.0", got.Message)

	detailed := domain.DefaultPersona()
	detailed.Verbosity = domain.VerbosityDetailed
	got = f.Success(queryWith(detailed), installIntent(), installCommand(), res)
	assert.Contains(t, got.Message, "took 1,234 ms")
	assert.Contains(t, got.Message, "tok-1")
	assert.Contains(t, got.Message, "Packages live in your own")
}

func TestSimpleWordsReplaceJargon(t *testing.T) {
	f := New(nil)
	persona := domain.DefaultPersona()
	persona.SimpleWords = true
	res := domain.ExecutionResult{State: domain.StateSucceeded}

	got := f.Success(queryWith(persona), installIntent(), installCommand(), res)
	assert.NotContains(t, got.Message, "profile")
	assert.Contains(t, got.Message, "package set")
	// The argv preview must never be rewritten.
	assert.Equal(t, "nix profile install nixpkgs#firefox", got.CommandPreview)
}

func TestViolationMessageOmitsRawInput(t *testing.T) {
	f := New(nil)
	q := domain.Query{Text: "install firefox; rm -rf /", Persona: domain.DefaultPersona()}
	v := domain.SecurityViolation{
		Category:    domain.CategoryInjection,
		Severity:    domain.SeverityCritical,
		Detail:      "command chaining is not allowed",
		Remediation: "ask for one thing at a time",
	}

	got := f.Violation(q, v)
	require.False(t, got.Success)
	require.NotNil(t, got.Violation)
	assert.NotContains(t, got.Message, "rm -rf")
	assert.Contains(t, got.Message, "command chaining is not allowed")
	assert.Contains(t, got.Message, "Ask for one thing at a time")
}

func TestViolationWithWait(t *testing.T) {
	f := New(nil)
	v := domain.SecurityViolation{
		Category: domain.CategoryRateLimit,
		Severity: domain.SeverityMedium,
		Detail:   "request budget exhausted",
		Wait:     30 * time.Second,
	}
	got := f.Violation(queryWith(domain.DefaultPersona()), v)
	assert.Contains(t, got.Message, "Try again in about")
}

func TestFailureClasses(t *testing.T) {
	f := New(nil)
	q := queryWith(domain.DefaultPersona())

	tests := []struct {
		name  string
		err   error
		class domain.ErrorClass
	}{
		{"not found", &domain.NotFoundError{Kind: domain.IntentUnknown, Suggestions: []string{"install <package>"}}, domain.ClassNotFound},
		{"timeout", &domain.TimeoutError{Limit: 2 * time.Minute}, domain.ClassTimeout},
		{"execution", &domain.ExecutionError{Detail: "attribute missing", Err: errors.New("exit status 1")}, domain.ClassExecution},
		{"rate limit", &domain.RateLimitError{Wait: time.Minute}, domain.ClassRateLimit},
		{"internal", errors.New("boom"), domain.ClassInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Failure(q, installIntent(), tt.err)
			require.NotNil(t, got.Failure)
			assert.False(t, got.Success)
			assert.Equal(t, tt.class, got.Failure.Class)
			assert.Contains(t, got.Message, "I tried to install the package")
		})
	}
}

func TestFailureCarriesSuggestions(t *testing.T) {
	f := New(nil)
	err := &domain.NotFoundError{Kind: domain.IntentUnknown, Suggestions: []string{"install <package>", "search <query>"}}
	unknown := domain.Intent{Kind: domain.IntentUnknown, Stage: domain.StageFallback}

	got := f.Failure(queryWith(domain.DefaultPersona()), unknown, err)
	require.NotNil(t, got.Failure)
	assert.Len(t, got.Failure.Remediation, 2)
	assert.Contains(t, got.Message, "You could try: install <package>")
}
