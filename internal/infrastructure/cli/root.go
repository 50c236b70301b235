// Package cli wires the cobra command tree around the query pipeline.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/asknix/asknix/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Bare arguments are treated as a
// natural-language request, so `asknix install firefox` and
// `asknix ask install firefox` behave the same.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	rootOpts := &askOptions{}
	root := &cobra.Command{
		Use:   "asknix [request]",
		Short: "asknix - ask your package manager in plain language",
		Long: "asknix turns natural-language requests like \"install firefox\" or\n" +
			"\"what do I have installed\" into safe, previewed package operations.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAsk(container, rootOpts, cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindAskFlags(root, rootOpts)
	// Parsed for completeness; main reads the flag before cobra runs so the
	// logger can be built early.
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(newAskCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newAuditCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}
