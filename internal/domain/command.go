package domain

import "strings"

// CommandSpec is a validated, allow-listed, argument-vector representation of
// a toolchain operation. Specs are derived, never mutated, and never built
// from raw string concatenation.
type CommandSpec struct {
	Executable        string   `json:"executable"`
	Args              []string `json:"args"`
	RequiresPrivilege bool     `json:"requires_privilege"`
	Reversible        bool     `json:"reversible"`
	Mutating          bool     `json:"mutating"`
	Explanation       string   `json:"explanation"`
}

// Rendered returns the human-readable command line for previews and logs.
func (s CommandSpec) Rendered() string {
	return strings.Join(append([]string{s.Executable}, s.Args...), " ")
}

// ExecutionState tracks the terminal state of an execution attempt.
type ExecutionState string

const (
	StatePreview   ExecutionState = "preview"
	StateSucceeded ExecutionState = "succeeded"
	StateFailed    ExecutionState = "failed"
	// StatePartial marks a cancellation that arrived after an irreversible
	// process was already spawned: termination was requested but partial
	// effects may remain.
	StatePartial ExecutionState = "partial"
)

// ExecutionResult wraps details from the execution engine. Both the native
// and the subprocess path return this shape.
type ExecutionResult struct {
	State         ExecutionState `json:"state"`
	Stdout        string         `json:"stdout,omitempty"`
	Stderr        string         `json:"stderr,omitempty"`
	ExitCode      int            `json:"exit_code"`
	DurationMS    int64          `json:"duration_ms"`
	Backend       string         `json:"backend,omitempty"`
	RollbackToken string         `json:"rollback_token,omitempty"`
	Err           error          `json:"-"`
}

// Succeeded reports whether the attempt reached a successful terminal state.
func (r ExecutionResult) Succeeded() bool {
	return r.State == StateSucceeded || r.State == StatePreview
}
