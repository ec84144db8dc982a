package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite models",
	Long: `Manage your favorite models.

Favorites are stored in the local database and work offline.

Subcommands:
  add <model-id>     Mark a model as a favorite
  remove <model-id>  Remove a model from favorites
  list               List all favorite models`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <model-id>",
	Short: "Mark a model as a favorite",
	Long:  `Mark a model as a favorite by its numeric id. The model's summary is fetched and stored locally.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <model-id>",
	Short: "Remove a model from favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all favorite models",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return trackCLIError("favorites add", fmt.Errorf("invalid model id %q", args[0]))
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("favorites add", err)
	}
	defer a.Close()

	if fav, err := a.db.IsFavorite(id); err == nil && fav {
		fmt.Printf("Model %d is already a favorite.\n", id)
		return nil
	}

	// The summary snapshot needs model details, served from cache when fresh.
	model, err := a.catalog.GetModel(cmd.Context(), id)
	if err != nil {
		return trackCLIError("favorites add", fmt.Errorf("fetch model: %w", err))
	}

	favorited, err := a.library.ToggleFavorite(model)
	if err != nil {
		return trackCLIError("favorites add", fmt.Errorf("add favorite: %w", err))
	}

	telemetryClient.TrackFavoriteToggled(favorited)
	fmt.Printf("Added '%s' to favorites.\n", model.Name)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return trackCLIError("favorites remove", fmt.Errorf("invalid model id %q", args[0]))
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("favorites remove", err)
	}
	defer a.Close()

	fav, err := a.db.IsFavorite(id)
	if err != nil {
		return trackCLIError("favorites remove", fmt.Errorf("lookup favorite: %w", err))
	}
	if !fav {
		fmt.Printf("Model %d is not in your favorites.\n", id)
		return nil
	}

	if err := a.library.RemoveFavorite(id); err != nil {
		return trackCLIError("favorites remove", fmt.Errorf("remove favorite: %w", err))
	}

	telemetryClient.TrackFavoriteToggled(false)
	fmt.Printf("Removed model %d from favorites.\n", id)
	return nil
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("favorites list", err)
	}
	defer a.Close()

	favs, err := a.db.ListFavorites()
	if err != nil {
		return trackCLIError("favorites list", fmt.Errorf("list favorites: %w", err))
	}

	if len(favs) == 0 {
		fmt.Println("No favorites yet.")
		fmt.Println("\nUse 'civitdeck favorites add <model-id>' to mark a model as a favorite.")
		return nil
	}

	fmt.Printf("FAVORITES (%d models)\n", len(favs))
	fmt.Println("──────────────────────────────────────────────────")
	for _, fav := range favs {
		fmt.Printf("  %s%s\n", titleStyle.Render(fav.Name), nsfwBadge(fav.Nsfw))
		fmt.Printf("    id: %d | %s | by %s | added %s\n",
			fav.ModelID, fav.Type, fav.CreatorName, formatTimeSince(time.UnixMilli(fav.FavoritedAt)))
	}

	return nil
}
