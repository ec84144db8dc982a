package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/civitai"
)

var creatorsFlags struct {
	limit int
	page  int
}

var creatorsCmd = &cobra.Command{
	Use:   "creators [query]",
	Short: "Search creators in the CivitAI catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCreators,
}

func init() {
	creatorsCmd.Flags().IntVar(&creatorsFlags.limit, "limit", 20, "results per page")
	creatorsCmd.Flags().IntVar(&creatorsFlags.page, "page", 0, "page number")
}

func runCreators(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("creators", err)
	}
	defer a.Close()

	params := civitai.CreatorParams{
		Limit: creatorsFlags.limit,
		Page:  creatorsFlags.page,
	}
	if len(args) > 0 {
		params.Query = args[0]
	}

	page, err := a.catalog.SearchCreators(cmd.Context(), params)
	if err != nil {
		return trackCLIError("creators", fmt.Errorf("search creators: %w", err))
	}

	telemetryClient.TrackSearchPerformed("creators", len(page.Items), false)

	if len(page.Items) == 0 {
		fmt.Println("No creators found.")
		return nil
	}

	fmt.Printf("CREATORS (%d shown)\n", len(page.Items))
	fmt.Println("──────────────────────────────────────────────────")
	for _, c := range page.Items {
		fmt.Printf("  %s (%s models)\n", titleStyle.Render(c.Username), formatCount(c.ModelCount))
	}

	printCursor(page.Metadata)
	return nil
}
