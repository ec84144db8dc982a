package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/models"
	"github.com/riox432/civitdeck/internal/telemetry"
	"github.com/riox432/civitdeck/pkg/version"
)

func init() {
	// Commands reference the global client in error paths.
	telemetryClient = telemetry.New(nil)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", errors.New("load config: no such file"), "config_error"},
		{"database", errors.New("initialize database: locked"), "database_error"},
		{"network", errors.New("request timeout"), "network_error"},
		{"server error", errors.New("GET /models: status 500"), "network_error"},
		{"rate limit", errors.New("GET /models: status 429"), "rate_limit_error"},
		{"not found", errors.New("model not found"), "not_found_error"},
		{"validation", errors.New("invalid model id \"abc\""), "validation_error"},
		{"unknown", errors.New("something odd"), "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyError(tt.err))
		})
	}
}

func TestParseSortFlag(t *testing.T) {
	sort, err := parseSortFlag("highest-rated")
	require.NoError(t, err)
	assert.Equal(t, models.SortHighestRated, sort)

	sort, err = parseSortFlag("Most-Downloaded")
	require.NoError(t, err)
	assert.Equal(t, models.SortMostDownloaded, sort)

	_, err = parseSortFlag("trending")
	assert.Error(t, err)
}

func TestParsePeriodFlag(t *testing.T) {
	period, err := parsePeriodFlag("all")
	require.NoError(t, err)
	assert.Equal(t, models.PeriodAllTime, period)

	period, err = parsePeriodFlag("week")
	require.NoError(t, err)
	assert.Equal(t, models.PeriodWeek, period)

	_, err = parsePeriodFlag("fortnight")
	assert.Error(t, err)
}

func TestParseAspectFlag(t *testing.T) {
	aspect, err := parseAspectFlag("portrait")
	require.NoError(t, err)
	assert.Equal(t, models.AspectPortrait, aspect)

	_, err = parseAspectFlag("panorama")
	assert.Error(t, err)
}

func TestParseNsfwFlag(t *testing.T) {
	level, err := parseNsfwFlag("soft")
	require.NoError(t, err)
	assert.Equal(t, models.NsfwFilterSoft, level)

	_, err = parseNsfwFlag("medium")
	assert.Error(t, err)
}

func TestRecordVersionChange(t *testing.T) {
	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	orig := version.Version
	t.Cleanup(func() { version.Version = orig })

	// First run records quietly.
	version.Version = "1.0.0"
	assert.Empty(t, recordVersionChange(database, ""))
	prefs, err := database.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", prefs.LastRunVersion)

	// Same build again: nothing to do.
	assert.Empty(t, recordVersionChange(database, "1.0.0"))

	// Upgrade: the previous version comes back so a notice can be shown.
	version.Version = "1.1.0"
	assert.Equal(t, "1.0.0", recordVersionChange(database, "1.0.0"))
	prefs, err = database.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", prefs.LastRunVersion)

	// Downgrades and unparseable builds are recorded without a notice.
	version.Version = "dev"
	assert.Empty(t, recordVersionChange(database, "1.1.0"))
	prefs, err = database.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, "dev", prefs.LastRunVersion)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "12.4k", formatCount(12400))
	assert.Equal(t, "2.5M", formatCount(2_500_000))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde…", truncate("abcdefgh", 5))
}
