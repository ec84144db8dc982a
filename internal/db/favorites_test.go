package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

func TestToggleFavorite(t *testing.T) {
	db := testDB(t)
	model := testModel(42, "Nebula Diffusion")

	favorited, err := db.ToggleFavorite(model)
	require.NoError(t, err)
	assert.True(t, favorited)

	isFav, err := db.IsFavorite(42)
	require.NoError(t, err)
	assert.True(t, isFav)

	// Toggling again removes it.
	favorited, err = db.ToggleFavorite(model)
	require.NoError(t, err)
	assert.False(t, favorited)

	isFav, err = db.IsFavorite(42)
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestToggleFavorite_CapturesSnapshot(t *testing.T) {
	db := testDB(t)

	_, err := db.ToggleFavorite(testModel(7, "Aurora"))
	require.NoError(t, err)

	favs, err := db.ListFavorites()
	require.NoError(t, err)
	require.Len(t, favs, 1)

	fav := favs[0]
	assert.Equal(t, int64(7), fav.ModelID)
	assert.Equal(t, "Aurora", fav.Name)
	assert.Equal(t, models.ModelTypeCheckpoint, fav.Type)
	assert.Equal(t, "artist", fav.CreatorName)
	assert.Equal(t, "https://img.example/1.jpg", fav.ThumbnailURL)
	assert.Equal(t, int64(1200), fav.DownloadCount)
	assert.Greater(t, fav.FavoritedAt, int64(0))
}

func TestListFavorites_NewestFirst(t *testing.T) {
	db := testDB(t)

	first := models.NewFavoriteSnapshot(testModel(1, "Old"), testTime(1000))
	second := models.NewFavoriteSnapshot(testModel(2, "New"), testTime(2000))
	require.NoError(t, db.AddFavorite(first))
	require.NoError(t, db.AddFavorite(second))

	favs, err := db.ListFavorites()
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, int64(2), favs[0].ModelID)
	assert.Equal(t, int64(1), favs[1].ModelID)
}

func TestRemoveFavorite_Idempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.RemoveFavorite(999))

	_, err := db.ToggleFavorite(testModel(5, "X"))
	require.NoError(t, err)
	require.NoError(t, db.RemoveFavorite(5))
	require.NoError(t, db.RemoveFavorite(5))

	count, err := db.CountFavorites()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
