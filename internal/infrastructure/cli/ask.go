package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/asknix/asknix/internal/app"
	"github.com/asknix/asknix/internal/domain"
)

type askOptions struct {
	dryRun  bool
	yes     bool
	quiet   bool
	jsonOut bool
	persona string
	profile string
	timeout time.Duration
}

func bindAskFlags(cmd *cobra.Command, o *askOptions) {
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "Preview the command without running it")
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "Confirm irreversible operations")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "Suppress everything except the result")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "Emit the full response as JSON")
	cmd.Flags().StringVar(&o.persona, "persona", "", "Response style (default from config)")
	cmd.Flags().StringVar(&o.profile, "profile", "", "Profile identity (default from config)")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "Override command timeout (e.g. 30s, 5m)")
}

func newAskCommand(container *app.Container) *cobra.Command {
	o := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [request]",
		Short: "Process a natural-language request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(container, o, cmd, args)
		},
		SilenceUsage: true,
	}
	bindAskFlags(cmd, o)
	return cmd
}

func runAsk(container *app.Container, o *askOptions, cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	cfg := container.Config
	profile := o.profile
	if profile == "" {
		profile = cfg.Preferences.DefaultProfile
	}

	q := domain.Query{
		Context:   ctx,
		Text:      strings.Join(args, " "),
		ProfileID: profile,
		DryRun:    o.dryRun,
		Confirmed: o.yes,
		Persona:   cfg.PersonaByName(o.persona),
		Timestamp: time.Now(),
	}

	resp, err := container.Pipeline.Process(q)
	renderResponse(cmd.OutOrStdout(), resp, o.jsonOut, o.quiet)
	return err
}
