package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/filter"
	"github.com/riox432/civitdeck/internal/models"
)

var imagesFlags struct {
	modelID   int64
	versionID int64
	username  string
	sort      string
	period    string
	aspect    string
	limit     int
	cursor    string
	raw       bool
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Search images in the CivitAI catalog",
	Long: `Search rendered images in the CivitAI catalog.

Images beyond your NSFW preference are dropped unless --raw is given.
Use --aspect to keep only square, portrait or landscape images.`,
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().Int64Var(&imagesFlags.modelID, "model", 0, "filter by model id")
	imagesCmd.Flags().Int64Var(&imagesFlags.versionID, "version", 0, "filter by model version id")
	imagesCmd.Flags().StringVar(&imagesFlags.username, "creator", "", "filter by creator username")
	imagesCmd.Flags().StringVar(&imagesFlags.sort, "sort", "", "sort order: reactions, comments, newest")
	imagesCmd.Flags().StringVar(&imagesFlags.period, "period", "", "time period: all, year, month, week, day")
	imagesCmd.Flags().StringVar(&imagesFlags.aspect, "aspect", "", "aspect filter: square, portrait, landscape")
	imagesCmd.Flags().IntVar(&imagesFlags.limit, "limit", 20, "results per page")
	imagesCmd.Flags().StringVar(&imagesFlags.cursor, "cursor", "", "pagination cursor from a previous page")
	imagesCmd.Flags().BoolVar(&imagesFlags.raw, "raw", false, "skip local NSFW filtering")
}

func runImages(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("images", err)
	}
	defer a.Close()

	prefs, err := a.db.GetPreferences()
	if err != nil {
		return trackCLIError("images", fmt.Errorf("load preferences: %w", err))
	}

	params := civitai.ImageParams{
		ModelID:        imagesFlags.modelID,
		ModelVersionID: imagesFlags.versionID,
		Username:       imagesFlags.username,
		Period:         prefs.DefaultPeriod,
		Limit:          imagesFlags.limit,
		Cursor:         imagesFlags.cursor,
	}
	if imagesFlags.sort != "" {
		sort, err := parseImageSortFlag(imagesFlags.sort)
		if err != nil {
			return trackCLIError("images", err)
		}
		params.Sort = sort
	}
	if imagesFlags.period != "" {
		period, err := parsePeriodFlag(imagesFlags.period)
		if err != nil {
			return trackCLIError("images", err)
		}
		params.Period = period
	}

	page, err := a.catalog.SearchImages(cmd.Context(), params)
	if err != nil {
		return trackCLIError("images", fmt.Errorf("search images: %w", err))
	}

	results := page.Items
	if !imagesFlags.raw {
		results = filter.ByNsfwLevel(results, prefs.NsfwFilterLevel)
	}
	if imagesFlags.aspect != "" {
		aspect, err := parseAspectFlag(imagesFlags.aspect)
		if err != nil {
			return trackCLIError("images", err)
		}
		results = filter.ByAspect(results, aspect)
	}

	telemetryClient.TrackSearchPerformed("images", len(results), false)

	if len(results) == 0 {
		fmt.Println("No images found.")
		return nil
	}

	fmt.Printf("IMAGES (%d shown)\n", len(results))
	fmt.Println("──────────────────────────────────────────────────")
	for _, img := range results {
		fmt.Printf("  %d  %dx%d  %s  by %s\n", img.ID, img.Width, img.Height, img.NsfwLevel, img.Username)
		fmt.Printf("    %s\n", dimStyle.Render(img.URL))
		if img.Meta != nil && img.Meta.Prompt != "" {
			fmt.Printf("    prompt: %s\n", truncate(img.Meta.Prompt, 100))
		}
	}

	printCursor(page.Metadata)
	return nil
}

// parseImageSortFlag maps a CLI sort name to an image sort order.
func parseImageSortFlag(s string) (models.ImageSortOrder, error) {
	switch strings.ToLower(s) {
	case "reactions", "rated":
		return models.ImageSortHighestRated, nil
	case "comments":
		return models.ImageSortMostComments, nil
	case "newest":
		return models.ImageSortNewest, nil
	default:
		return "", fmt.Errorf("invalid image sort %q (reactions, comments, newest)", s)
	}
}

// parseAspectFlag maps a CLI aspect name to an aspect classification.
func parseAspectFlag(s string) (models.AspectRatio, error) {
	switch strings.ToLower(s) {
	case "square":
		return models.AspectSquare, nil
	case "portrait":
		return models.AspectPortrait, nil
	case "landscape":
		return models.AspectLandscape, nil
	default:
		return models.AspectAny, fmt.Errorf("invalid aspect %q (square, portrait, landscape)", s)
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
