package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// ErrNativeUnsupported signals that the native backend cannot serve this
// spec and the caller should fall back to the subprocess backend.
var ErrNativeUnsupported = errors.New("native backend does not support this command")

// NativeToolchain answers read-only queries by reading the profile manifest
// directly instead of spawning the toolchain. Mutating commands are never
// handled here.
type NativeToolchain struct {
	manifestPath string
}

// NewNativeToolchain builds the manifest-backed backend.
func NewNativeToolchain(manifestPath string) *NativeToolchain {
	return &NativeToolchain{manifestPath: manifestPath}
}

// Name implements ports.Toolchain.
func (n *NativeToolchain) Name() string { return "native" }

// Run serves "profile list" and installed-package info from the manifest.
// Everything else returns ErrNativeUnsupported.
func (n *NativeToolchain) Run(_ context.Context, spec domain.CommandSpec) (domain.ExecutionResult, error) {
	if spec.Mutating || n.manifestPath == "" {
		return domain.ExecutionResult{}, ErrNativeUnsupported
	}

	start := time.Now()
	switch {
	case len(spec.Args) >= 2 && spec.Args[0] == "profile" && spec.Args[1] == "list":
		out, err := n.listInstalled()
		return n.finish(out, start, err)
	case len(spec.Args) >= 1 && spec.Args[0] == "eval":
		if name, ok := infoTarget(spec.Args); ok {
			out, err := n.describeInstalled(name)
			return n.finish(out, start, err)
		}
	}
	return domain.ExecutionResult{}, ErrNativeUnsupported
}

func (n *NativeToolchain) finish(out string, start time.Time, err error) (domain.ExecutionResult, error) {
	if err != nil {
		return domain.ExecutionResult{}, err
	}
	return domain.ExecutionResult{
		State:      domain.StateSucceeded,
		Stdout:     out,
		DurationMS: time.Since(start).Milliseconds(),
		Backend:    n.Name(),
	}, nil
}

// manifestElement is the subset of the profile manifest this backend reads.
// Version 2 stores elements as an array, version 3 as a map keyed by name.
type manifestElement struct {
	AttrPath   string   `json:"attrPath"`
	StorePaths []string `json:"storePaths"`
}

type manifestFile struct {
	Version  int             `json:"version"`
	Elements json.RawMessage `json:"elements"`
}

func (n *NativeToolchain) elements() (map[string]manifestElement, error) {
	data, err := os.ReadFile(n.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	named := map[string]manifestElement{}
	if err := json.Unmarshal(file.Elements, &named); err == nil {
		return named, nil
	}
	var listed []manifestElement
	if err := json.Unmarshal(file.Elements, &listed); err != nil {
		return nil, fmt.Errorf("parse manifest elements: %w", err)
	}
	for _, el := range listed {
		named[elementName(el)] = el
	}
	return named, nil
}

func (n *NativeToolchain) listInstalled() (string, error) {
	elements, err := n.elements()
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(elements))
	for name := range elements {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		el := elements[name]
		fmt.Fprintf(&b, "%s", name)
		if len(el.StorePaths) > 0 {
			fmt.Fprintf(&b, "\t%s", el.StorePaths[0])
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (n *NativeToolchain) describeInstalled(name string) (string, error) {
	elements, err := n.elements()
	if err != nil {
		return "", err
	}
	el, ok := elements[name]
	if !ok {
		// Not installed locally; the subprocess backend can still
		// evaluate metadata from the package collection.
		return "", ErrNativeUnsupported
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s is installed in your profile\n", name)
	if el.AttrPath != "" {
		fmt.Fprintf(&b, "attribute: %s\n", el.AttrPath)
	}
	for _, p := range el.StorePaths {
		fmt.Fprintf(&b, "store path: %s\n", p)
	}
	return b.String(), nil
}

// infoTarget extracts the package name from an eval argv like
// ["eval", "--raw", "nixpkgs#git.meta.description"].
func infoTarget(args []string) (string, bool) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "nixpkgs#") {
			continue
		}
		rest := strings.TrimPrefix(arg, "nixpkgs#")
		if i := strings.Index(rest, ".meta"); i > 0 {
			rest = rest[:i]
		}
		if rest != "" {
			return rest, true
		}
	}
	return "", false
}

// elementName derives a short name from a manifest array entry.
func elementName(el manifestElement) string {
	if el.AttrPath != "" {
		parts := strings.Split(el.AttrPath, ".")
		return parts[len(parts)-1]
	}
	if len(el.StorePaths) > 0 {
		// store paths look like /nix/store/<hash>-name-version
		base := el.StorePaths[0]
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[i+1:]
		}
		if i := strings.Index(base, "-"); i > 0 {
			return base[i+1:]
		}
		return base
	}
	return "unknown"
}

var _ ports.Toolchain = (*NativeToolchain)(nil)
