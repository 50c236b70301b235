package domain

import (
	"fmt"
	"time"
)

// ErrorClass tags the pipeline's failure taxonomy for serialization and
// exit-code mapping.
type ErrorClass string

const (
	ClassValidation ErrorClass = "validation"
	ClassNotFound   ErrorClass = "not_found"
	ClassExecution  ErrorClass = "execution"
	ClassTimeout    ErrorClass = "timeout"
	ClassRateLimit  ErrorClass = "rate_limit"
	ClassInternal   ErrorClass = "internal"
)

// ValidationError is returned when input is rejected before execution.
// Always recoverable locally.
type ValidationError struct {
	Violation SecurityViolation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("input rejected: %s (%s)", e.Violation.Detail, e.Violation.Category)
}

// NotFoundError is returned when the knowledge base has no entry for an
// intent. Suggestions carry "did you mean" candidates.
type NotFoundError struct {
	Kind        IntentKind
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no command known for intent %q", e.Kind)
}

// ExecutionError is returned when both the native and the fallback path
// failed.
type ExecutionError struct {
	Spec   CommandSpec
	Detail string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed: %s", e.Detail)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// TimeoutError is returned when an external process exceeded its deadline
// and was killed. Never retried automatically.
type TimeoutError struct {
	Spec  CommandSpec
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command exceeded %s deadline and was terminated", e.Limit)
}

// ConfirmationError is returned when an irreversible command was requested
// without explicit confirmation and outside dry-run mode.
type ConfirmationError struct {
	Spec CommandSpec
}

func (e *ConfirmationError) Error() string {
	return "irreversible command requires explicit confirmation"
}

// RateLimitError is returned when the caller exceeded the request budget.
type RateLimitError struct {
	Wait time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.Wait.Round(time.Second))
}
