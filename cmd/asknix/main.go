package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/infrastructure/cli"
)

// Exit codes: 0 success, 1 execution or internal failure, 2 validation
// rejection, 3 rate limited.
const (
	exitFailure   = 1
	exitRejected  = 2
	exitRateLimit = 3
)

func main() {
	ctx := context.Background()
	root, err := cli.NewRootCmd(ctx, cli.Options{Verbose: isVerbose()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitFailure)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var (
		validation   *domain.ValidationError
		confirmation *domain.ConfirmationError
		rateLimit    *domain.RateLimitError
	)
	switch {
	case errors.As(err, &rateLimit):
		return exitRateLimit
	case errors.As(err, &validation), errors.As(err, &confirmation):
		return exitRejected
	default:
		return exitFailure
	}
}

func isVerbose() bool {
	if strings.EqualFold(os.Getenv("ASKNIX_DEBUG"), "1") || strings.EqualFold(os.Getenv("ASKNIX_DEBUG"), "true") {
		return true
	}
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
