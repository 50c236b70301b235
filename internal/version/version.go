// Package version exposes build metadata injected via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"
	// Commit is the short git revision.
	Commit = "none"
)

// String renders the version line shown by `asknix version`.
func String() string {
	return fmt.Sprintf("asknix %s (%s)", Version, Commit)
}
