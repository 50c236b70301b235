package executor

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Availability records what the startup probe found on this machine. The
// probe runs once; per-query checks would race against the environment
// anyway.
type Availability struct {
	BinaryPath   string
	ManifestPath string
}

// HasBinary reports whether the toolchain binary was found on PATH.
func (a Availability) HasBinary() bool { return a.BinaryPath != "" }

// HasManifest reports whether a readable profile manifest was found.
func (a Availability) HasManifest() bool { return a.ManifestPath != "" }

// Probe locates the toolchain binary and the profile manifest. manifestPath
// overrides the default search when non-empty.
func Probe(binary, manifestPath string) Availability {
	if binary == "" {
		binary = "nix"
	}
	var avail Availability
	if path, err := exec.LookPath(binary); err == nil {
		avail.BinaryPath = path
	}
	for _, candidate := range manifestCandidates(manifestPath) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			avail.ManifestPath = candidate
			break
		}
	}
	return avail
}

func manifestCandidates(override string) []string {
	if override != "" {
		return []string{override}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".nix-profile", "manifest.json"),
		filepath.Join(home, ".local", "state", "nix", "profiles", "profile", "manifest.json"),
	}
}
