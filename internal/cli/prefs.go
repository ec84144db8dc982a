package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riox432/civitdeck/internal/models"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage user preferences",
	Long: `Manage user preferences.

Settings:
  nsfw     NSFW filter level: off, soft, all
  sort     Default model sort: highest-rated, most-downloaded, newest
  period   Default time period: all, year, month, week, day
  columns  Grid columns for clients that render grids
  api-key  CivitAI API key sent as a bearer token

Subcommands:
  get               Show all preferences
  set <name> <value>  Change a preference`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show all preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change a preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return trackCLIError("prefs get", err)
	}
	defer a.Close()

	prefs, err := a.library.Preferences()
	if err != nil {
		return trackCLIError("prefs get", fmt.Errorf("load preferences: %w", err))
	}

	apiKey := "(not set)"
	if prefs.APIKey != "" {
		apiKey = "(set)"
	}

	fmt.Println("PREFERENCES")
	fmt.Println("──────────────────────────────────────────────────")
	fmt.Printf("  nsfw:    %s\n", prefs.NsfwFilterLevel)
	fmt.Printf("  sort:    %s\n", prefs.DefaultSort)
	fmt.Printf("  period:  %s\n", prefs.DefaultPeriod)
	fmt.Printf("  columns: %d\n", prefs.GridColumns)
	fmt.Printf("  api-key: %s\n", apiKey)

	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]

	a, err := openApp()
	if err != nil {
		return trackCLIError("prefs set", err)
	}
	defer a.Close()

	switch name {
	case "nsfw":
		level, err := parseNsfwFlag(value)
		if err != nil {
			return trackCLIError("prefs set", err)
		}
		if err := a.library.SetNsfwFilterLevel(level); err != nil {
			return trackCLIError("prefs set", fmt.Errorf("set nsfw level: %w", err))
		}
	case "sort":
		sort, err := parseSortFlag(value)
		if err != nil {
			return trackCLIError("prefs set", err)
		}
		if err := a.library.SetDefaultSort(sort); err != nil {
			return trackCLIError("prefs set", fmt.Errorf("set default sort: %w", err))
		}
	case "period":
		period, err := parsePeriodFlag(value)
		if err != nil {
			return trackCLIError("prefs set", err)
		}
		if err := a.library.SetDefaultPeriod(period); err != nil {
			return trackCLIError("prefs set", fmt.Errorf("set default period: %w", err))
		}
	case "columns":
		cols, err := strconv.Atoi(value)
		if err != nil || cols < 1 {
			return trackCLIError("prefs set", fmt.Errorf("invalid column count %q", value))
		}
		if err := a.library.SetGridColumns(cols); err != nil {
			return trackCLIError("prefs set", fmt.Errorf("set grid columns: %w", err))
		}
	case "api-key":
		if err := a.library.SetAPIKey(value); err != nil {
			return trackCLIError("prefs set", fmt.Errorf("set api key: %w", err))
		}
	default:
		return trackCLIError("prefs set",
			fmt.Errorf("unknown preference %q (nsfw, sort, period, columns, api-key)", name))
	}

	telemetryClient.TrackSettingsChanged(name)
	fmt.Printf("Preference '%s' updated.\n", name)
	return nil
}

// parseNsfwFlag maps a CLI value to an NSFW filter level.
func parseNsfwFlag(s string) (models.NsfwFilterLevel, error) {
	switch strings.ToLower(s) {
	case "off":
		return models.NsfwFilterOff, nil
	case "soft":
		return models.NsfwFilterSoft, nil
	case "all":
		return models.NsfwFilterAll, nil
	default:
		return "", fmt.Errorf("invalid nsfw level %q (off, soft, all)", s)
	}
}
