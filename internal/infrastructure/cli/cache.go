package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asknix/asknix/internal/app"
)

func newCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the response cache",
	}
	cacheCmd.AddCommand(
		newCacheStatsCommand(container),
		newCacheClearCommand(container),
		newCacheCleanupCommand(container),
	)
	return cacheCmd
}

func newCacheStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show hit/miss counters and entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd.OutOrStdout(), container)
		},
	}
}

func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.CacheStore.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

func newCacheCleanupCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := container.CacheStore.Cleanup()
			if err != nil {
				return fmt.Errorf("cleanup cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries.\n", removed)
			return nil
		},
	}
}

func showCacheStats(out io.Writer, container *app.Container) error {
	stats := container.CacheStore.Stats()
	total := stats.Hits + stats.Misses
	rate := 0.0
	if total > 0 {
		rate = float64(stats.Hits) / float64(total) * 100
	}
	fmt.Fprintf(out, "Hits: %d\nMisses: %d\nHit rate: %.1f%%\nEvictions: %d\n", stats.Hits, stats.Misses, rate, stats.Evictions)
	fmt.Fprintf(out, "Memory entries: %d\nPersistent entries: %d\n", stats.MemoryEntries, stats.PersistEntries)
	return nil
}
