// Package executor runs assembled commands. The engine prefers the native
// manifest-reading backend for read-only queries and falls back to a direct
// subprocess for everything else. Commands are argv arrays end to end; a
// shell is never involved.
package executor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// Engine implements ports.ExecutionEngine.
type Engine struct {
	native   ports.Toolchain
	fallback ports.Toolchain
	timeout  time.Duration
	logger   ports.Logger
	newToken func() string
}

// NewEngine builds the engine. native may be nil when no profile manifest
// was found at startup; fallback is required.
func NewEngine(native, fallback ports.Toolchain, timeout time.Duration, logger ports.Logger) *Engine {
	return &Engine{
		native:   native,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
		newToken: uuid.NewString,
	}
}

// Execute runs the spec. Dry runs never reach a backend: the preview result
// is built from the spec alone, so repeating a dry run is always
// side-effect free and byte-stable.
func (e *Engine) Execute(ctx context.Context, spec domain.CommandSpec, dryRun bool) (domain.ExecutionResult, error) {
	if dryRun {
		return domain.ExecutionResult{
			State:   domain.StatePreview,
			Backend: "preview",
		}, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// Minted before anything runs: the token must reference the state the
	// mutation starts from, not the state it leaves behind. The toolchain's
	// own generation counter holds the prior state itself.
	var token string
	if spec.Mutating && spec.Reversible {
		token = e.newToken()
	}

	if e.native != nil {
		result, err := e.native.Run(ctx, spec)
		switch {
		case err == nil:
			return e.finish(result, spec, token), nil
		case errors.Is(err, ErrNativeUnsupported):
			// Expected for mutating commands; fall through silently.
		default:
			// The native backend failed on a command it claims to
			// support. Retry once through the subprocess before
			// surfacing an error.
			if e.logger != nil {
				e.logger.Warn("native backend failed, retrying via subprocess", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	result, err := e.fallback.Run(ctx, spec)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.State = partialOrFailed(spec)
			return result, &domain.TimeoutError{Spec: spec, Limit: e.timeout}
		}
		if ctx.Err() == context.Canceled {
			result.State = partialOrFailed(spec)
		}
		return result, &domain.ExecutionError{
			Spec:   spec,
			Detail: firstLine(result.Stderr),
			Err:    err,
		}
	}
	return e.finish(result, spec, token), nil
}

// finish attaches the pre-minted rollback token to successful reversible
// mutations.
func (e *Engine) finish(result domain.ExecutionResult, spec domain.CommandSpec, token string) domain.ExecutionResult {
	if result.Succeeded() && spec.Mutating && spec.Reversible {
		result.RollbackToken = token
	}
	return result
}

// partialOrFailed distinguishes interrupted irreversible mutations, whose
// effects may have partially landed, from cleanly failed commands.
func partialOrFailed(spec domain.CommandSpec) domain.ExecutionState {
	if spec.Mutating && !spec.Reversible {
		return domain.StatePartial
	}
	return domain.StateFailed
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

var _ ports.ExecutionEngine = (*Engine)(nil)
