package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var excludeCmd = &cobra.Command{
	Use:   "exclude",
	Short: "Manage excluded tags",
	Long: `Manage excluded tags.

Models carrying an excluded tag are filtered out of search results.

Subcommands:
  add <tag>     Exclude a tag
  remove <tag>  Stop excluding a tag
  list          List all excluded tags`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var excludeAddCmd = &cobra.Command{
	Use:   "add <tag>",
	Short: "Exclude a tag from search results",
	Args:  cobra.ExactArgs(1),
	RunE:  runExcludeAdd,
}

var excludeRemoveCmd = &cobra.Command{
	Use:   "remove <tag>",
	Short: "Stop excluding a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runExcludeRemove,
}

var excludeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all excluded tags",
	Args:  cobra.NoArgs,
	RunE:  runExcludeList,
}

func init() {
	excludeCmd.AddCommand(excludeAddCmd)
	excludeCmd.AddCommand(excludeRemoveCmd)
	excludeCmd.AddCommand(excludeListCmd)
}

func runExcludeAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("exclude add", err)
	}
	defer a.Close()

	if err := a.db.AddExcludedTag(args[0]); err != nil {
		return trackCLIError("exclude add", fmt.Errorf("exclude tag: %w", err))
	}

	fmt.Printf("Excluded tag '%s'.\n", args[0])
	return nil
}

func runExcludeRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("exclude remove", err)
	}
	defer a.Close()

	if err := a.db.RemoveExcludedTag(args[0]); err != nil {
		return trackCLIError("exclude remove", fmt.Errorf("remove excluded tag: %w", err))
	}

	fmt.Printf("Tag '%s' is no longer excluded.\n", args[0])
	return nil
}

func runExcludeList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("exclude list", err)
	}
	defer a.Close()

	tags, err := a.db.ListExcludedTags()
	if err != nil {
		return trackCLIError("exclude list", fmt.Errorf("list excluded tags: %w", err))
	}

	if len(tags) == 0 {
		fmt.Println("No excluded tags.")
		return nil
	}

	fmt.Printf("EXCLUDED TAGS (%d)\n", len(tags))
	fmt.Println("──────────────────────────────────────────────────")
	for _, tag := range tags {
		fmt.Printf("  %s (excluded %s)\n", tag.Tag, formatTimeSince(time.UnixMilli(tag.AddedAt)))
	}

	return nil
}
