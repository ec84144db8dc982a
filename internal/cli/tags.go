package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/civitai"
)

var tagsFlags struct {
	limit int
	page  int
}

var tagsCmd = &cobra.Command{
	Use:   "tags [query]",
	Short: "Search tags in the CivitAI catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().IntVar(&tagsFlags.limit, "limit", 20, "results per page")
	tagsCmd.Flags().IntVar(&tagsFlags.page, "page", 0, "page number")
}

func runTags(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("tags", err)
	}
	defer a.Close()

	params := civitai.TagParams{
		Limit: tagsFlags.limit,
		Page:  tagsFlags.page,
	}
	if len(args) > 0 {
		params.Query = args[0]
	}

	page, err := a.catalog.SearchTags(cmd.Context(), params)
	if err != nil {
		return trackCLIError("tags", fmt.Errorf("search tags: %w", err))
	}

	telemetryClient.TrackSearchPerformed("tags", len(page.Items), false)

	if len(page.Items) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	fmt.Printf("TAGS (%d shown)\n", len(page.Items))
	fmt.Println("──────────────────────────────────────────────────")
	for _, tag := range page.Items {
		fmt.Printf("  %s (%s models)\n", tag.Name, formatCount(tag.ModelCount))
	}

	printCursor(page.Metadata)
	return nil
}
