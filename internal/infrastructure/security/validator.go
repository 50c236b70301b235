// Package security implements the dangerous-pattern validator, the
// per-identity rate limiter and the bounded audit log. Validation runs
// before any caching or execution, and again on every extracted entity and
// on the final assembled CommandSpec.
package security

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// Validator implements the ports.SecurityValidator port.
type Validator struct {
	policy  *Policy
	limiter *RateLimiter
	audit   ports.AuditLog
	logger  ports.Logger
}

// NewValidator builds a validator around an immutable policy.
func NewValidator(policy *Policy, limiter *RateLimiter, audit ports.AuditLog, logger ports.Logger) *Validator {
	return &Validator{policy: policy, limiter: limiter, audit: audit, logger: logger}
}

// Admit implements the rate-limit gate. Exceeding the budget yields a
// rate_limit violation with a positive wait estimate.
func (v *Validator) Admit(identity string) domain.ValidationResult {
	if v.limiter == nil {
		return domain.Pass()
	}
	ok, wait := v.limiter.Allow(identity)
	if ok {
		return domain.Pass()
	}
	violation := domain.SecurityViolation{
		Category:    domain.CategoryRateLimit,
		Severity:    domain.SeverityMedium,
		Detail:      "request budget exhausted",
		Remediation: fmt.Sprintf("wait about %s before retrying", wait.Round(time.Second)),
		Wait:        wait,
	}
	v.record(identity, violation)
	return domain.Reject(violation)
}

// Validate checks raw input text against the compiled pattern set.
func (v *Validator) Validate(identity, text string) domain.ValidationResult {
	if len(text) > v.policy.MaxInputLength {
		violation := domain.SecurityViolation{
			Category:    domain.CategoryInjection,
			Severity:    domain.SeverityMedium,
			Detail:      "input exceeds maximum length",
			Remediation: fmt.Sprintf("keep requests under %d characters", v.policy.MaxInputLength),
		}
		v.record(identity, violation)
		return domain.Reject(violation)
	}
	return v.scan(identity, text)
}

// ValidateEntity re-checks a single extracted entity value. Entities pulled
// out of safe-looking text can still carry dangerous fragments.
func (v *Validator) ValidateEntity(identity, name, value string) domain.ValidationResult {
	result := v.scan(identity, value)
	if !result.OK {
		result.Violation.Detail = fmt.Sprintf("entity %q: %s", name, result.Violation.Detail)
	}
	return result
}

// ValidateSpec is the defense-in-depth check on the assembled command:
// the executable must be allow-listed and every arg token is re-scanned.
func (v *Validator) ValidateSpec(identity string, spec domain.CommandSpec) domain.ValidationResult {
	if !v.policy.AllowedExecutables[spec.Executable] {
		violation := domain.SecurityViolation{
			Category:    domain.CategoryPrivilege,
			Severity:    domain.SeverityCritical,
			Detail:      fmt.Sprintf("executable %q is not allow-listed", spec.Executable),
			Remediation: "only the package toolchain itself may be invoked",
		}
		v.record(identity, violation)
		return domain.Reject(violation)
	}
	for _, arg := range spec.Args {
		if result := v.scan(identity, arg); !result.OK {
			result.Violation.Detail = "argument: " + result.Violation.Detail
			return result
		}
	}
	return domain.Pass()
}

func (v *Validator) scan(identity, text string) domain.ValidationResult {
	var worst *domain.SecurityViolation
	for _, pattern := range v.policy.Patterns {
		if !pattern.Re.MatchString(text) {
			continue
		}
		severity := parseSeverity(pattern.Rule.Severity)
		if worst == nil || severity.MoreSevere(worst.Severity) {
			worst = &domain.SecurityViolation{
				Category:    parseCategory(pattern.Rule.Category),
				Severity:    severity,
				Detail:      pattern.Rule.Message,
				Remediation: pattern.Rule.Remediation,
			}
		}
	}
	if worst == nil {
		return domain.Pass()
	}
	v.record(identity, *worst)
	return domain.Reject(*worst)
}

// record appends to the audit log. Detail carries the rule message only,
// never the raw input.
func (v *Validator) record(identity string, violation domain.SecurityViolation) {
	if v.logger != nil {
		v.logger.Warn("input rejected", map[string]interface{}{
			"category": string(violation.Category),
			"severity": string(violation.Severity),
			"profile":  identity,
		})
	}
	if v.audit == nil {
		return
	}
	v.audit.Append(domain.AuditRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		ProfileID: identity,
		Category:  violation.Category,
		Severity:  violation.Severity,
		Detail:    violation.Detail,
	})
}

var _ ports.SecurityValidator = (*Validator)(nil)
