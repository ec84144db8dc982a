package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Manage hidden models",
	Long: `Manage hidden models.

Hidden models are filtered out of search results.

Subcommands:
  add <model-id>     Hide a model
  remove <model-id>  Unhide a model
  list               List all hidden models`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var hideAddCmd = &cobra.Command{
	Use:   "add <model-id>",
	Short: "Hide a model from search results",
	Args:  cobra.ExactArgs(1),
	RunE:  runHideAdd,
}

var hideRemoveCmd = &cobra.Command{
	Use:   "remove <model-id>",
	Short: "Unhide a model",
	Args:  cobra.ExactArgs(1),
	RunE:  runHideRemove,
}

var hideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all hidden models",
	Args:  cobra.NoArgs,
	RunE:  runHideList,
}

func init() {
	hideCmd.AddCommand(hideAddCmd)
	hideCmd.AddCommand(hideRemoveCmd)
	hideCmd.AddCommand(hideListCmd)
}

func runHideAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "model id")
	if err != nil {
		return trackCLIError("hide add", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("hide add", err)
	}
	defer a.Close()

	// A name makes the hidden list readable; hiding works without one.
	name := ""
	if model, err := a.catalog.GetModel(cmd.Context(), id); err == nil {
		name = model.Name
	}

	if err := a.db.HideModel(id, name); err != nil {
		return trackCLIError("hide add", fmt.Errorf("hide model: %w", err))
	}

	fmt.Printf("Hidden model %d.\n", id)
	return nil
}

func runHideRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "model id")
	if err != nil {
		return trackCLIError("hide remove", err)
	}

	a, err := openApp()
	if err != nil {
		return trackCLIError("hide remove", err)
	}
	defer a.Close()

	if err := a.db.UnhideModel(id); err != nil {
		return trackCLIError("hide remove", fmt.Errorf("unhide model: %w", err))
	}

	fmt.Printf("Model %d is no longer hidden.\n", id)
	return nil
}

func runHideList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("hide list", err)
	}
	defer a.Close()

	hidden, err := a.db.ListHiddenModels()
	if err != nil {
		return trackCLIError("hide list", fmt.Errorf("list hidden models: %w", err))
	}

	if len(hidden) == 0 {
		fmt.Println("No hidden models.")
		return nil
	}

	fmt.Printf("HIDDEN MODELS (%d)\n", len(hidden))
	fmt.Println("──────────────────────────────────────────────────")
	for _, h := range hidden {
		name := h.Name
		if name == "" {
			name = "(unknown)"
		}
		fmt.Printf("  %s\n", name)
		fmt.Printf("    id: %d | hidden %s\n", h.ModelID, formatTimeSince(time.UnixMilli(h.AddedAt)))
	}

	return nil
}
