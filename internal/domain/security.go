package domain

import "time"

// ViolationCategory classifies why input was rejected.
type ViolationCategory string

const (
	CategoryInjection     ViolationCategory = "injection"
	CategoryPathTraversal ViolationCategory = "path_traversal"
	CategoryPrivilege     ViolationCategory = "privilege_escalation"
	CategoryRateLimit     ViolationCategory = "rate_limit"
	CategoryDataExposure  ViolationCategory = "data_exposure"
)

// Severity grades a violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// MoreSevere reports whether s outranks other.
func (s Severity) MoreSevere(other Severity) bool {
	return severityOrder[s] > severityOrder[other]
}

var severityOrder = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// SecurityViolation describes a rejected input. Produced, never persisted
// beyond the bounded audit log.
type SecurityViolation struct {
	Category    ViolationCategory `json:"category"`
	Severity    Severity          `json:"severity"`
	Detail      string            `json:"detail"`
	Remediation string            `json:"remediation"`
	// Wait is populated for rate-limit violations only: the estimated time
	// until the caller may retry.
	Wait time.Duration `json:"wait,omitempty"`
}

// ValidationResult is the outcome of a validator check: pass, or reject with
// a violation. Validators never raise; every failure mode is a value.
type ValidationResult struct {
	OK        bool
	Violation *SecurityViolation
}

// Pass is the successful validation result.
func Pass() ValidationResult { return ValidationResult{OK: true} }

// Reject wraps a violation into a failing result.
func Reject(v SecurityViolation) ValidationResult {
	return ValidationResult{OK: false, Violation: &v}
}

// AuditRecord is one append-only audit log entry. Detail is redacted to the
// matched rule category, never the raw input.
type AuditRecord struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	ProfileID string            `json:"profile_id"`
	Category  ViolationCategory `json:"category"`
	Severity  Severity          `json:"severity"`
	Detail    string            `json:"detail"`
}
