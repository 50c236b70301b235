package executor

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// SubprocessToolchain runs the assembled argv directly, never through a
// shell, so the string that was validated is exactly the string that runs.
type SubprocessToolchain struct {
	binaryPath string
}

// NewSubprocessToolchain builds the subprocess backend. binaryPath replaces
// the spec executable when set, so the probed absolute path is used.
func NewSubprocessToolchain(binaryPath string) *SubprocessToolchain {
	return &SubprocessToolchain{binaryPath: binaryPath}
}

// Name implements ports.Toolchain.
func (s *SubprocessToolchain) Name() string { return "subprocess" }

// Run executes the spec and captures both streams.
func (s *SubprocessToolchain) Run(ctx context.Context, spec domain.CommandSpec) (domain.ExecutionResult, error) {
	executable := spec.Executable
	if s.binaryPath != "" {
		executable = s.binaryPath
	}

	c := exec.CommandContext(ctx, executable, spec.Args...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		State:      domain.StateSucceeded,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
		Backend:    s.Name(),
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.State = domain.StateFailed
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		return result, err
	}
	if err != nil {
		result.State = domain.StateFailed
		result.ExitCode = -1
		result.Err = err
		return result, err
	}
	return result, nil
}

var _ ports.Toolchain = (*SubprocessToolchain)(nil)
