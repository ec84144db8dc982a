package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var showFlags struct {
	copyURL bool
}

var showCmd = &cobra.Command{
	Use:   "show <model-id>",
	Short: "Show detailed information about a model",
	Long: `Display detailed information about a model by its numeric id.

Viewing a model records it in your browsing history. Use --copy-url to
copy the model's page URL to the clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.copyURL, "copy-url", false, "copy the model page URL to the clipboard")
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return trackCLIError("show", fmt.Errorf("invalid model id %q", args[0]))
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("show", err)
	}
	defer a.Close()

	model, err := a.catalog.GetModel(cmd.Context(), id)
	if err != nil {
		return trackCLIError("show", fmt.Errorf("fetch model: %w", err))
	}

	if err := a.db.RecordHistory(model); err != nil {
		return trackCLIError("show", fmt.Errorf("record history: %w", err))
	}

	telemetryClient.TrackModelViewed(string(model.Type), model.Nsfw)

	fmt.Printf("%s%s\n", titleStyle.Render(model.Name), nsfwBadge(model.Nsfw))
	fmt.Printf("Id: %d\n", model.ID)
	fmt.Printf("Type: %s\n", model.Type)
	fmt.Printf("Creator: %s\n", model.CreatorName())
	fmt.Printf("Downloads: %s | Favorites: %s | Rating: %.2f (%s)\n",
		formatCount(model.Stats.DownloadCount),
		formatCount(model.Stats.FavoriteCount),
		model.Stats.Rating,
		formatCount(model.Stats.RatingCount))

	if len(model.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(model.Tags, ", "))
	}

	if fav, err := a.db.IsFavorite(model.ID); err == nil && fav {
		fmt.Println(okStyle.Render("★ In favorites"))
	}

	if len(model.Versions) > 0 {
		fmt.Printf("\nVersions (%d):\n", len(model.Versions))
		for _, v := range model.Versions {
			fmt.Printf("  %s (id %d, base %s)\n", v.Name, v.ID, v.BaseModel)
			if len(v.TrainedWords) > 0 {
				fmt.Printf("    trigger: %s\n", strings.Join(v.TrainedWords, ", "))
			}
			for _, f := range v.Files {
				marker := ""
				if f.Primary {
					marker = " [primary]"
				}
				fmt.Printf("    %s (%.1f MB)%s\n", f.Name, f.SizeKB/1024, marker)
			}
		}
	}

	pageURL := fmt.Sprintf("https://civitai.com/models/%d", model.ID)
	fmt.Printf("\nURL: %s\n", pageURL)

	if showFlags.copyURL {
		if err := clipboard.WriteAll(pageURL); err != nil {
			fmt.Println(errStyle.Render("Could not copy URL to clipboard."))
		} else {
			fmt.Println(okStyle.Render("URL copied to clipboard."))
		}
	}

	return nil
}
