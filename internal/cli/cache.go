package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
	Long: `Manage the local response cache.

API responses are kept for the configured TTL (15 minutes by default)
so recent browsing works offline.

Subcommands:
  sweep  Remove expired cache entries
  purge  Remove all cache entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired cache entries",
	Args:  cobra.NoArgs,
	RunE:  runCacheSweep,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all cache entries",
	Args:  cobra.NoArgs,
	RunE:  runCachePurge,
}

func init() {
	cacheCmd.AddCommand(cacheSweepCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}

func runCacheSweep(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("cache sweep", err)
	}
	defer a.Close()

	removed, err := a.catalog.ClearExpiredCache()
	if err != nil {
		return trackCLIError("cache sweep", fmt.Errorf("sweep cache: %w", err))
	}

	telemetryClient.TrackCacheSwept(removed)
	fmt.Printf("Removed %d expired cache entries.\n", removed)
	return nil
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("cache purge", err)
	}
	defer a.Close()

	if err := a.db.ClearCache(); err != nil {
		return trackCLIError("cache purge", fmt.Errorf("purge cache: %w", err))
	}

	fmt.Println("Response cache purged.")
	return nil
}
