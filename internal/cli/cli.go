// Package cli provides the command-line interface for CivitDeck.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/telemetry"
	"github.com/riox432/civitdeck/pkg/version"
)

var telemetryClient telemetry.Client

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "civitdeck",
	Short: "Offline-aware CivitAI catalog browser",
	Long: `Offline-aware CivitAI catalog browser

Browse generative-art models, images, creators and tags from the CivitAI
catalog. Responses are cached locally, and favorites, collections,
browsing history and preferences live in a local SQLite store so the
tool stays useful without a connection.

Telemetry:
  Telemetry is enabled by default, always anonymous, and will never track
  personal information, search queries, or IP addresses.

  Opt-out with:
  	CIVITDECK_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "civitdeck" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.Name(), hasFlags, durationMs)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(creatorsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(excludeCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(infoCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	errorType := classifyError(err)
	telemetryClient.TrackCLIError(cmdName, errorType)
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "network", "timeout", "connection", "status 5"):
		return "network_error"
	case containsAny(errStr, "rate limit", "status 429"):
		return "rate_limit_error"
	case containsAny(errStr, "not found", "does not exist", "status 404"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
