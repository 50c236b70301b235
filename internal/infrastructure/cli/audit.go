package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asknix/asknix/internal/app"
)

const auditTimeFormat = "2006-01-02 15:04:05"

func newAuditCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent security rejections",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.AuditLog.Recent(limit)
			if err != nil {
				return fmt.Errorf("read audit log: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No rejections recorded.")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(out, "%s  %-8s %-20s %s\n",
					rec.Timestamp.Format(auditTimeFormat),
					rec.Severity,
					rec.Category,
					rec.Detail,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")
	return cmd
}
