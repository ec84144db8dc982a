package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/db"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage model collections",
	Long: `Manage your model collections.

Collection 1 is the reserved "Favorites" collection and cannot be
renamed or deleted.

Subcommands:
  list                          List all collections
  show <id>                     List models in a collection
  create <name>                 Create a new collection
  rename <id> <name>            Rename a collection
  delete <id>                   Delete a collection and its entries
  add <id> <model-id>           Add a model to a collection
  remove <id> <model-id...>     Remove models from a collection
  move <from> <to> <model-id...>  Move models between collections`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all collections",
	Args:  cobra.NoArgs,
	RunE:  runCollectionsList,
}

var collectionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "List models in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsShow,
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsCreate,
}

var collectionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionsRename,
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection and its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsDelete,
}

var collectionsAddCmd = &cobra.Command{
	Use:   "add <id> <model-id>",
	Short: "Add a model to a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionsAdd,
}

var collectionsRemoveCmd = &cobra.Command{
	Use:   "remove <id> <model-id...>",
	Short: "Remove models from a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCollectionsRemove,
}

var collectionsMoveCmd = &cobra.Command{
	Use:   "move <from> <to> <model-id...>",
	Short: "Move models between collections",
	Long: `Move models from one collection to another in a single step.

Models already in the target collection stay there; the move never
duplicates an entry.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runCollectionsMove,
}

func init() {
	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsShowCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsRenameCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	collectionsCmd.AddCommand(collectionsAddCmd)
	collectionsCmd.AddCommand(collectionsRemoveCmd)
	collectionsCmd.AddCommand(collectionsMoveCmd)
}

// parseID parses a numeric CLI argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

// parseIDs parses a list of numeric CLI arguments.
func parseIDs(args []string, what string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg, what)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runCollectionsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("collections list", err)
	}
	defer a.Close()

	cols, err := a.library.Collections()
	if err != nil {
		return trackCLIError("collections list", fmt.Errorf("list collections: %w", err))
	}

	fmt.Printf("COLLECTIONS (%d)\n", len(cols))
	fmt.Println("──────────────────────────────────────────────────")
	for _, col := range cols {
		marker := ""
		if col.IsDefault {
			marker = dimStyle.Render(" (default)")
		}
		fmt.Printf("  %s%s\n", titleStyle.Render(col.Name), marker)
		fmt.Printf("    id: %d | %d models | created %s\n",
			col.ID, col.ModelCount, formatTimeSince(col.CreatedTime()))
	}

	return nil
}

func runCollectionsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "collection id")
	if err != nil {
		return trackCLIError("collections show", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("collections show", err)
	}
	defer a.Close()

	col, err := a.db.GetCollection(id)
	if err != nil {
		return trackCLIError("collections show", fmt.Errorf("get collection: %w", err))
	}

	entries, err := a.library.ModelsInCollection(id)
	if err != nil {
		return trackCLIError("collections show", fmt.Errorf("list collection models: %w", err))
	}

	fmt.Printf("%s (%d models)\n", titleStyle.Render(col.Name), len(entries))
	fmt.Println("──────────────────────────────────────────────────")
	for _, e := range entries {
		fmt.Printf("  %s%s\n", e.Name, nsfwBadge(e.Nsfw))
		fmt.Printf("    id: %d | %s | by %s | added %s\n",
			e.ModelID, e.Type, e.CreatorName, formatTimeSince(time.UnixMilli(e.AddedAt)))
	}

	return nil
}

func runCollectionsCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("collections create", err)
	}
	defer a.Close()

	col, err := a.library.CreateCollection(args[0])
	if err != nil {
		return trackCLIError("collections create", fmt.Errorf("create collection: %w", err))
	}

	telemetryClient.TrackCollectionChanged("create", 0)
	fmt.Printf("Created collection '%s' (id %d).\n", col.Name, col.ID)
	return nil
}

func runCollectionsRename(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "collection id")
	if err != nil {
		return trackCLIError("collections rename", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("collections rename", err)
	}
	defer a.Close()

	if err := a.library.RenameCollection(id, args[1]); err != nil {
		if errors.Is(err, db.ErrDefaultCollection) {
			return trackCLIError("collections rename", fmt.Errorf("the default collection cannot be renamed"))
		}
		return trackCLIError("collections rename", fmt.Errorf("rename collection: %w", err))
	}

	telemetryClient.TrackCollectionChanged("rename", 0)
	fmt.Printf("Renamed collection %d to '%s'.\n", id, args[1])
	return nil
}

func runCollectionsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "collection id")
	if err != nil {
		return trackCLIError("collections delete", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("collections delete", err)
	}
	defer a.Close()

	if err := a.library.DeleteCollection(id); err != nil {
		if errors.Is(err, db.ErrDefaultCollection) {
			return trackCLIError("collections delete", fmt.Errorf("the default collection cannot be deleted"))
		}
		return trackCLIError("collections delete", fmt.Errorf("delete collection: %w", err))
	}

	telemetryClient.TrackCollectionChanged("delete", 0)
	fmt.Printf("Deleted collection %d.\n", id)
	return nil
}

func runCollectionsAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "collection id")
	if err != nil {
		return trackCLIError("collections add", err)
	}
	modelID, err := parseID(args[1], "model id")
	if err != nil {
		return trackCLIError("collections add", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("collections add", err)
	}
	defer a.Close()

	model, err := a.catalog.GetModel(cmd.Context(), modelID)
	if err != nil {
		return trackCLIError("collections add", fmt.Errorf("fetch model: %w", err))
	}

	if err := a.library.AddToCollection(id, model); err != nil {
		return trackCLIError("collections add", fmt.Errorf("add to collection: %w", err))
	}

	telemetryClient.TrackCollectionChanged("add", 1)
	fmt.Printf("Added '%s' to collection %d.\n", model.Name, id)
	return nil
}

func runCollectionsRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "collection id")
	if err != nil {
		return trackCLIError("collections remove", err)
	}
	modelIDs, err := parseIDs(args[1:], "model id")
	if err != nil {
		return trackCLIError("collections remove", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("collections remove", err)
	}
	defer a.Close()

	if err := a.library.BulkRemoveModels(id, modelIDs); err != nil {
		return trackCLIError("collections remove", fmt.Errorf("remove from collection: %w", err))
	}

	telemetryClient.TrackCollectionChanged("remove", len(modelIDs))
	fmt.Printf("Removed %d model(s) from collection %d.\n", len(modelIDs), id)
	return nil
}

func runCollectionsMove(cmd *cobra.Command, args []string) error {
	from, err := parseID(args[0], "source collection id")
	if err != nil {
		return trackCLIError("collections move", err)
	}
	to, err := parseID(args[1], "target collection id")
	if err != nil {
		return trackCLIError("collections move", err)
	}
	modelIDs, err := parseIDs(args[2:], "model id")
	if err != nil {
		return trackCLIError("collections move", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("collections move", err)
	}
	defer a.Close()

	if err := a.library.BulkMoveModels(from, to, modelIDs); err != nil {
		return trackCLIError("collections move", fmt.Errorf("move models: %w", err))
	}

	telemetryClient.TrackCollectionChanged("move", len(modelIDs))
	fmt.Printf("Moved %d model(s) from collection %d to %d.\n", len(modelIDs), from, to)
	return nil
}
