package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/filter"
	"github.com/riox432/civitdeck/internal/models"
)

var searchFlags struct {
	query    string
	tag      string
	username string
	types    []string
	sort     string
	period   string
	limit    int
	cursor   string
	nsfw     bool
	raw      bool
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search models in the CivitAI catalog",
	Long: `Search models in the CivitAI catalog.

Results are cached locally for the configured TTL, so repeating a search
within that window works offline. Hidden models and excluded tags are
filtered out, and images beyond your NSFW preference are dropped.

Pass --cursor with the value printed at the end of a page to fetch the
next page. Use --raw to skip local filtering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.tag, "tag", "", "filter by tag")
	searchCmd.Flags().StringVar(&searchFlags.username, "creator", "", "filter by creator username")
	searchCmd.Flags().StringSliceVar(&searchFlags.types, "type", nil, "model types (Checkpoint, LORA, ...)")
	searchCmd.Flags().StringVar(&searchFlags.sort, "sort", "", "sort order: highest-rated, most-downloaded, newest")
	searchCmd.Flags().StringVar(&searchFlags.period, "period", "", "time period: all, year, month, week, day")
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 20, "results per page")
	searchCmd.Flags().StringVar(&searchFlags.cursor, "cursor", "", "pagination cursor from a previous page")
	searchCmd.Flags().BoolVar(&searchFlags.nsfw, "nsfw", false, "include NSFW models in the remote query")
	searchCmd.Flags().BoolVar(&searchFlags.raw, "raw", false, "skip local hidden/excluded/NSFW filtering")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("search", err)
	}
	defer a.Close()

	prefs, err := a.db.GetPreferences()
	if err != nil {
		return trackCLIError("search", fmt.Errorf("load preferences: %w", err))
	}

	params := civitai.ModelParams{
		Tag:      searchFlags.tag,
		Username: searchFlags.username,
		Sort:     prefs.DefaultSort,
		Period:   prefs.DefaultPeriod,
		Limit:    searchFlags.limit,
		Cursor:   searchFlags.cursor,
	}
	if len(args) > 0 {
		params.Query = args[0]
	}
	for _, t := range searchFlags.types {
		params.Types = append(params.Types, models.ParseModelType(t))
	}
	if searchFlags.sort != "" {
		sort, err := parseSortFlag(searchFlags.sort)
		if err != nil {
			return trackCLIError("search", err)
		}
		params.Sort = sort
	}
	if searchFlags.period != "" {
		period, err := parsePeriodFlag(searchFlags.period)
		if err != nil {
			return trackCLIError("search", err)
		}
		params.Period = period
	}
	if cmd.Flags().Changed("nsfw") {
		params.Nsfw = &searchFlags.nsfw
	}

	page, err := a.catalog.SearchModels(cmd.Context(), params)
	if err != nil {
		return trackCLIError("search", fmt.Errorf("search models: %w", err))
	}

	results := page.Items
	if !searchFlags.raw {
		results = filter.NsfwModels(results, prefs.NsfwFilterLevel)

		hidden, _ := a.db.ListHiddenModels()
		excluded, _ := a.db.ListExcludedTags()
		results = filter.NewPersonalization(hidden, excluded).Models(results)
	}

	telemetryClient.TrackSearchPerformed("models", len(results), false)

	if len(results) == 0 {
		fmt.Println("No models found.")
		return nil
	}

	fmt.Printf("MODELS (%d shown)\n", len(results))
	fmt.Println("──────────────────────────────────────────────────")
	for _, m := range results {
		fmt.Printf("  %s%s\n", titleStyle.Render(m.Name), nsfwBadge(m.Nsfw))
		fmt.Printf("    id: %d | %s | by %s\n", m.ID, m.Type, m.CreatorName())
		fmt.Printf("    %s downloads | rating %.2f (%s)\n",
			formatCount(m.Stats.DownloadCount), m.Stats.Rating, formatCount(m.Stats.RatingCount))
		fmt.Println()
	}

	printCursor(page.Metadata)
	return nil
}

// printCursor prints the next-page cursor when there is one.
func printCursor(meta models.PageMetadata) {
	if meta.HasMore() {
		fmt.Println(dimStyle.Render("More results: --cursor " + meta.NextCursor))
	}
}

// parseSortFlag maps a CLI sort name to a model sort order.
func parseSortFlag(s string) (models.SortOrder, error) {
	switch strings.ToLower(s) {
	case "highest-rated", "rated":
		return models.SortHighestRated, nil
	case "most-downloaded", "downloads":
		return models.SortMostDownloaded, nil
	case "newest":
		return models.SortNewest, nil
	default:
		return "", fmt.Errorf("invalid sort %q (highest-rated, most-downloaded, newest)", s)
	}
}

// parsePeriodFlag maps a CLI period name to a time period.
func parsePeriodFlag(s string) (models.TimePeriod, error) {
	switch strings.ToLower(s) {
	case "all", "alltime":
		return models.PeriodAllTime, nil
	case "year":
		return models.PeriodYear, nil
	case "month":
		return models.PeriodMonth, nil
	case "week":
		return models.PeriodWeek, nil
	case "day":
		return models.PeriodDay, nil
	default:
		return "", fmt.Errorf("invalid period %q (all, year, month, week, day)", s)
	}
}
