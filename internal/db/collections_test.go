package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

// addEntry puts a model into a collection using snapshot semantics.
func addEntry(t *testing.T, db *DB, collectionID, modelID int64, name string) {
	t.Helper()
	entry := models.NewCollectionEntry(collectionID, testModel(modelID, name), time.Now())
	require.NoError(t, db.AddModelToCollection(entry))
}

func TestCreateAndListCollections(t *testing.T) {
	db := testDB(t)

	col, err := db.CreateCollection("Landscapes")
	require.NoError(t, err)
	assert.NotEqual(t, models.DefaultCollectionID, col.ID)

	cols, err := db.ListCollections()
	require.NoError(t, err)
	require.Len(t, cols, 2)

	// Default collection sorts first.
	assert.True(t, cols[0].IsDefault)
	assert.Equal(t, "Landscapes", cols[1].Name)
}

func TestRenameCollection(t *testing.T) {
	db := testDB(t)

	col, err := db.CreateCollection("Drafts")
	require.NoError(t, err)

	require.NoError(t, db.RenameCollection(col.ID, "Finals"))

	got, err := db.GetCollection(col.ID)
	require.NoError(t, err)
	assert.Equal(t, "Finals", got.Name)
}

func TestRenameCollection_DefaultRejected(t *testing.T) {
	db := testDB(t)

	err := db.RenameCollection(models.DefaultCollectionID, "Renamed")
	assert.ErrorIs(t, err, ErrDefaultCollection)

	// Unchanged.
	col, err := db.GetCollection(models.DefaultCollectionID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCollectionName, col.Name)
}

func TestDeleteCollection_DefaultRejected(t *testing.T) {
	db := testDB(t)

	err := db.DeleteCollection(models.DefaultCollectionID)
	assert.ErrorIs(t, err, ErrDefaultCollection)

	_, err = db.GetCollection(models.DefaultCollectionID)
	require.NoError(t, err)
}

func TestDeleteCollection_CascadesEntries(t *testing.T) {
	db := testDB(t)

	col, err := db.CreateCollection("Temp")
	require.NoError(t, err)
	addEntry(t, db, col.ID, 1, "A")
	addEntry(t, db, col.ID, 2, "B")

	require.NoError(t, db.DeleteCollection(col.ID))

	_, err = db.GetCollection(col.ID)
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	entries, err := db.ListCollectionModels(col.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteCollection_NotFound(t *testing.T) {
	db := testDB(t)
	assert.ErrorIs(t, db.DeleteCollection(999), ErrCollectionNotFound)
}

func TestAddModelToCollection(t *testing.T) {
	db := testDB(t)

	addEntry(t, db, models.DefaultCollectionID, 10, "Sunset")

	has, err := db.CollectionContains(models.DefaultCollectionID, 10)
	require.NoError(t, err)
	assert.True(t, has)

	// Re-adding replaces the snapshot, never duplicates.
	addEntry(t, db, models.DefaultCollectionID, 10, "Sunset v2")
	entries, err := db.ListCollectionModels(models.DefaultCollectionID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Sunset v2", entries[0].Name)
}

func TestAddModelToCollection_MissingCollection(t *testing.T) {
	db := testDB(t)

	entry := models.NewCollectionEntry(404, testModel(1, "X"), time.Now())
	assert.ErrorIs(t, db.AddModelToCollection(entry), ErrCollectionNotFound)
}

func TestListCollections_DerivedFields(t *testing.T) {
	db := testDB(t)

	addEntry(t, db, models.DefaultCollectionID, 1, "A")
	addEntry(t, db, models.DefaultCollectionID, 2, "B")

	col, err := db.GetCollection(models.DefaultCollectionID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), col.ModelCount)
	assert.Equal(t, "https://img.example/1.jpg", col.ThumbnailURL)
}

func TestBulkRemoveModels(t *testing.T) {
	db := testDB(t)

	col, err := db.CreateCollection("Batch")
	require.NoError(t, err)
	addEntry(t, db, col.ID, 1, "A")
	addEntry(t, db, col.ID, 2, "B")
	addEntry(t, db, col.ID, 3, "C")

	require.NoError(t, db.BulkRemoveModels(col.ID, []int64{1, 3}))

	entries, err := db.ListCollectionModels(col.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ModelID)
}

func TestBulkMoveModels(t *testing.T) {
	db := testDB(t)

	target, err := db.CreateCollection("Target")
	require.NoError(t, err)

	addEntry(t, db, models.DefaultCollectionID, 7, "Seven")
	addEntry(t, db, models.DefaultCollectionID, 8, "Eight")

	require.NoError(t, db.BulkMoveModels(models.DefaultCollectionID, target.ID, []int64{7, 8}))

	source, err := db.ListCollectionModels(models.DefaultCollectionID)
	require.NoError(t, err)
	assert.Empty(t, source)

	moved, err := db.ListCollectionModels(target.ID)
	require.NoError(t, err)
	assert.Len(t, moved, 2)
}

func TestBulkMoveModels_AlreadyInTarget(t *testing.T) {
	db := testDB(t)

	target, err := db.CreateCollection("Target")
	require.NoError(t, err)

	addEntry(t, db, models.DefaultCollectionID, 7, "Seven")
	addEntry(t, db, target.ID, 7, "Seven")

	require.NoError(t, db.BulkMoveModels(models.DefaultCollectionID, target.ID, []int64{7}))

	// Membership, not accumulation: the source loses the entry and the
	// target still holds exactly one.
	source, err := db.ListCollectionModels(models.DefaultCollectionID)
	require.NoError(t, err)
	assert.Empty(t, source)

	moved, err := db.ListCollectionModels(target.ID)
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}

func TestBulkMoveModels_MissingTarget(t *testing.T) {
	db := testDB(t)

	addEntry(t, db, models.DefaultCollectionID, 7, "Seven")

	err := db.BulkMoveModels(models.DefaultCollectionID, 404, []int64{7})
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	// Atomic: nothing was removed from the source.
	entries, err := db.ListCollectionModels(models.DefaultCollectionID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBulkMoveModels_SkipsMissingSourceEntries(t *testing.T) {
	db := testDB(t)

	target, err := db.CreateCollection("Target")
	require.NoError(t, err)
	addEntry(t, db, models.DefaultCollectionID, 1, "One")

	// Id 2 is not in the source; the move of id 1 still happens.
	require.NoError(t, db.BulkMoveModels(models.DefaultCollectionID, target.ID, []int64{1, 2}))

	moved, err := db.ListCollectionModels(target.ID)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, int64(1), moved[0].ModelID)
}
