package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Shared output styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	nsfwStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// formatCount renders large counters compactly (12400 -> "12.4k").
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatTimeSince formats a duration since a time in a human-readable way.
func formatTimeSince(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}

// nsfwBadge returns a styled marker for NSFW models, or "".
func nsfwBadge(nsfw bool) string {
	if !nsfw {
		return ""
	}
	return " " + nsfwStyle.Render("[NSFW]")
}
