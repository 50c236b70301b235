package domain

import (
	"context"
	"time"
)

// Query captures a single natural-language request originating from the CLI
// or another front end. Immutable once created.
type Query struct {
	Context   context.Context
	Text      string
	ProfileID string
	DryRun    bool
	Confirmed bool
	Persona   PersonaStyle
	Timestamp time.Time
}

// Response is the canonical result propagated back to the caller.
type Response struct {
	Success        bool               `json:"success"`
	Message        string             `json:"message"`
	CommandPreview string             `json:"command_preview,omitempty"`
	Violation      *SecurityViolation `json:"violation,omitempty"`
	Failure        *Failure           `json:"failure,omitempty"`
	Intent         Intent             `json:"intent"`
	Confidence     float64            `json:"confidence"`
	FromCache      bool               `json:"from_cache,omitempty"`
}

// Failure describes a non-security failure in a serializable form.
type Failure struct {
	Class       ErrorClass `json:"class"`
	Detail      string     `json:"detail"`
	Remediation []string   `json:"remediation,omitempty"`
}

// Pipeline exposes the use-case boundary for handling a query.
type Pipeline interface {
	Process(Query) (Response, error)
}
