package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

// testTime builds a deterministic timestamp from milliseconds since epoch.
func testTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(Config{
		Path:        dbPath,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

// testModel builds a minimal model for snapshot-based operations.
func testModel(id int64, name string) *models.Model {
	return &models.Model{
		ID:   id,
		Name: name,
		Type: models.ModelTypeCheckpoint,
		Creator: &models.Creator{
			Username: "artist",
		},
		Stats: models.ModelStats{
			DownloadCount: 1200,
			FavoriteCount: 40,
			Rating:        4.7,
		},
		Versions: []models.ModelVersion{
			{
				ID:     id * 10,
				Images: []models.Image{{URL: "https://img.example/1.jpg"}},
			},
		},
	}
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "civitdeck.db")

	db, err := New(DefaultConfig(dbPath))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file was not created")
	assert.Equal(t, dbPath, db.Path())
}

func TestNew_SeedsDefaultCollection(t *testing.T) {
	db := testDB(t)

	col, err := db.GetCollection(models.DefaultCollectionID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCollectionName, col.Name)
	assert.True(t, col.IsDefault)
}

func TestNew_SeedsPreferencesSingleton(t *testing.T) {
	db := testDB(t)

	prefs, err := db.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, models.UserPreferencesID, prefs.ID)
	assert.Equal(t, models.NsfwFilterOff, prefs.NsfwFilterLevel)
	assert.Equal(t, models.SortHighestRated, prefs.DefaultSort)
	assert.Equal(t, models.PeriodAllTime, prefs.DefaultPeriod)
}

func TestNew_ReopenKeepsSingletons(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "civitdeck.db")

	db1, err := New(DefaultConfig(dbPath))
	require.NoError(t, err)
	require.NoError(t, db1.SetNsfwFilterLevel(models.NsfwFilterSoft))
	require.NoError(t, db1.Close())

	db2, err := New(DefaultConfig(dbPath))
	require.NoError(t, err)
	defer func() { _ = db2.Close() }()

	// Reopening must not reset the stored preference or add rows.
	prefs, err := db2.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, models.NsfwFilterSoft, prefs.NsfwFilterLevel)

	cols, err := db2.ListCollections()
	require.NoError(t, err)
	assert.Len(t, cols, 1)
}

func TestGetStats(t *testing.T) {
	db := testDB(t)

	_, err := db.ToggleFavorite(testModel(1, "A"))
	require.NoError(t, err)
	require.NoError(t, db.PutCache("/models", `{"items":[]}`))
	require.NoError(t, db.RecordHistory(testModel(2, "B")))

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Favorites)
	assert.Equal(t, int64(1), stats.Collections)
	assert.Equal(t, int64(1), stats.CachedResponses)
	assert.Equal(t, int64(1), stats.HistoryEntries)
	assert.Greater(t, stats.SizeBytes, int64(0))
}
