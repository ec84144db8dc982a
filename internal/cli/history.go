package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage browsing history",
	Long: `Manage your browsing history.

Every model viewed with 'civitdeck show' is recorded. Viewing the same
model again moves it to the top instead of adding a duplicate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently viewed models",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all browsing history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "entries to show")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("history list", err)
	}
	defer a.Close()

	entries, err := a.db.ListHistory(historyFlags.limit)
	if err != nil {
		return trackCLIError("history list", fmt.Errorf("list history: %w", err))
	}

	if len(entries) == 0 {
		fmt.Println("No browsing history yet.")
		return nil
	}

	fmt.Printf("HISTORY (%d entries)\n", len(entries))
	fmt.Println("──────────────────────────────────────────────────")
	for _, e := range entries {
		fmt.Printf("  %s\n", e.Name)
		fmt.Printf("    id: %d | %s | viewed %s\n",
			e.ModelID, e.Type, formatTimeSince(time.UnixMilli(e.ViewedAt)))
	}

	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("history clear", err)
	}
	defer a.Close()

	if err := a.db.ClearHistory(); err != nil {
		return trackCLIError("history clear", fmt.Errorf("clear history: %w", err))
	}

	fmt.Println("Browsing history cleared.")
	return nil
}
