package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/pkg/version"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show local store statistics and version",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("info", err)
	}
	defer a.Close()

	stats, err := a.db.GetStats()
	if err != nil {
		return trackCLIError("info", fmt.Errorf("load stats: %w", err))
	}

	fmt.Println(version.Info())
	if version.IsDevBuild() {
		fmt.Println(dimStyle.Render("development build (not a tagged release)"))
	}
	fmt.Println()
	fmt.Println("LOCAL STORE")
	fmt.Println("──────────────────────────────────────────────────")
	fmt.Printf("  Database: %s\n", a.db.Path())
	fmt.Printf("  Size: %.1f KB\n", float64(stats.SizeBytes)/1024)
	fmt.Printf("  Favorites: %d\n", stats.Favorites)
	fmt.Printf("  Collections: %d\n", stats.Collections)
	fmt.Printf("  Cached responses: %d\n", stats.CachedResponses)
	fmt.Printf("  History entries: %d\n", stats.HistoryEntries)

	return nil
}
