package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asknix/asknix/internal/app"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.OutOrStdout(), container)
		},
	}
}

func runDoctor(out io.Writer, container *app.Container) error {
	check := func(ok bool, label, detail string) {
		mark := "ok"
		if !ok {
			mark = "missing"
		}
		fmt.Fprintf(out, "[%-7s] %s", mark, label)
		if detail != "" {
			fmt.Fprintf(out, " (%s)", detail)
		}
		fmt.Fprintln(out)
	}

	avail := container.Availability
	check(avail.HasBinary(), "toolchain binary", avail.BinaryPath)
	check(avail.HasManifest(), "profile manifest", avail.ManifestPath)
	check(true, "configuration", fmt.Sprintf("persona %q, profile %q",
		container.Config.Preferences.DefaultPersona, container.Config.Preferences.DefaultProfile))

	cacheDir := container.Config.Cache.Dir
	if cacheDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cacheDir = home + "/.asknix/cache"
		}
	}
	_, cacheErr := os.Stat(cacheDir)
	check(cacheErr == nil, "cache directory", cacheDir)

	check(container.Config.Security.Enabled, "rate limiting",
		fmt.Sprintf("%d/min, burst %d", container.Config.Security.RequestsPerMin, container.Config.Security.Burst))

	if !avail.HasBinary() {
		fmt.Fprintln(out, "\nThe package toolchain was not found on PATH; commands will fail to run.")
	} else if !avail.HasManifest() {
		fmt.Fprintln(out, "\nNo profile manifest found; read-only queries will use the toolchain binary.")
	}
	return nil
}
