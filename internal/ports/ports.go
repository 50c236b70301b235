// Package ports defines the interfaces (ports) for the hexagonal
// architecture. The pipeline in internal/services depends only on these
// abstractions; concrete adapters live in internal/infrastructure.
package ports

import (
	"context"

	"github.com/asknix/asknix/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.asknix/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SecurityValidator runs the pre-compiled dangerous-pattern checks. It is
// invoked on the raw text before anything else, on every extracted entity,
// and again on the final assembled CommandSpec.
type SecurityValidator interface {
	// Admit applies the per-identity rate limit. A failing result carries a
	// rate_limit violation with a computed wait time.
	Admit(identity string) domain.ValidationResult
	Validate(identity, text string) domain.ValidationResult
	ValidateEntity(identity, name, value string) domain.ValidationResult
	ValidateSpec(identity string, spec domain.CommandSpec) domain.ValidationResult
}

// AuditLog records security violations. Append is best-effort and bounded;
// it must never block or fail the request path.
type AuditLog interface {
	Append(domain.AuditRecord)
	Recent(limit int) ([]domain.AuditRecord, error)
}

// IntentRecognizer converts free text into a typed Intent. It never fails:
// the fallback stage produces IntentUnknown with confidence 0.
type IntentRecognizer interface {
	Recognize(text string) domain.Intent
}

// KnowledgeBase maps intents to concrete toolchain invocations plus
// educational metadata for failures.
type KnowledgeBase interface {
	Resolve(intent domain.Intent) (domain.CommandSpec, error)
	Education(kind domain.IntentKind) string
	// Vocabulary lists known entity names for the recognizer's fuzzy stage.
	Vocabulary() []string
	// Suggestions returns "did you mean" candidates for a misspelled entity.
	Suggestions(entity string) []string
}

// Toolchain runs a single CommandSpec. Implementations are the in-process
// native binding and the external-process fallback.
type Toolchain interface {
	Name() string
	Run(ctx context.Context, spec domain.CommandSpec) (domain.ExecutionResult, error)
}

// ExecutionEngine turns a CommandSpec into a result, honoring dry-run and
// choosing between the native path and the subprocess fallback.
type ExecutionEngine interface {
	Execute(ctx context.Context, spec domain.CommandSpec, dryRun bool) (domain.ExecutionResult, error)
}

// CacheStore is the two-tier response cache. Get promotes persistent-tier
// hits into memory; Put may persist asynchronously.
type CacheStore interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Put(entry domain.CacheEntry) error
	Clear() error
	Cleanup() (int, error)
	Stats() domain.CacheStats
	Close() error
}

// Formatter renders pipeline outcomes into the final Response. Pure: no
// side effects, fully determined by its inputs.
type Formatter interface {
	Success(q domain.Query, intent domain.Intent, spec domain.CommandSpec, res domain.ExecutionResult) domain.Response
	Violation(q domain.Query, v domain.SecurityViolation) domain.Response
	Failure(q domain.Query, intent domain.Intent, err error) domain.Response
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
