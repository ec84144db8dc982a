package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

// backdate rewrites a cache row's timestamp to age time ago.
func backdate(t *testing.T, db *DB, key string, age time.Duration) {
	t.Helper()
	err := db.Model(&models.CachedAPIResponse{}).
		Where("cache_key = ?", key).
		Update("cached_at", time.Now().Add(-age).UnixMilli()).Error
	require.NoError(t, err)
}

func TestGetCached_MissReturnsNoError(t *testing.T) {
	db := testDB(t)

	payload, ok, err := db.GetCached("/models?query=cat", DefaultCacheTTL)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, payload)
}

func TestPutCacheAndGetCached(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.PutCache("/models?query=cat", `{"items":[1]}`))

	payload, ok, err := db.GetCached("/models?query=cat", DefaultCacheTTL)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[1]}`, payload)
}

func TestPutCache_ReplacesExisting(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.PutCache("/models", `{"v":1}`))
	require.NoError(t, db.PutCache("/models", `{"v":2}`))

	payload, ok, err := db.GetCached("/models", DefaultCacheTTL)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"v":2}`, payload)

	var count int64
	require.NoError(t, db.Model(&models.CachedAPIResponse{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetCached_TTLBoundary(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.PutCache("/models", `{}`))

	// Just inside the window.
	backdate(t, db, "/models", DefaultCacheTTL-time.Second)
	_, ok, err := db.GetCached("/models", DefaultCacheTTL)
	require.NoError(t, err)
	assert.True(t, ok)

	// Aged exactly the TTL: fresh means strictly younger, so this is stale.
	backdate(t, db, "/models", DefaultCacheTTL)
	_, ok, err = db.GetCached("/models", DefaultCacheTTL)
	require.NoError(t, err)
	assert.False(t, ok)

	// Just past the window.
	backdate(t, db, "/models", DefaultCacheTTL+time.Second)
	_, ok, err = db.GetCached("/models", DefaultCacheTTL)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearExpired_RemovesRowAgedExactlyTTL(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.PutCache("/boundary", `{}`))
	backdate(t, db, "/boundary", DefaultCacheTTL)

	removed, err := db.ClearExpired(DefaultCacheTTL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestGetCached_ExpiredRowIsNotDeleted(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.PutCache("/models", `{}`))
	backdate(t, db, "/models", DefaultCacheTTL+time.Minute)

	_, ok, err := db.GetCached("/models", DefaultCacheTTL)
	require.NoError(t, err)
	require.False(t, ok)

	// The read path never mutates; sweeping is explicit.
	var count int64
	require.NoError(t, db.Model(&models.CachedAPIResponse{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestClearExpired(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.PutCache("/fresh", `{}`))
	require.NoError(t, db.PutCache("/stale", `{}`))
	backdate(t, db, "/stale", DefaultCacheTTL+time.Minute)

	removed, err := db.ClearExpired(DefaultCacheTTL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, ok, err := db.GetCached("/fresh", DefaultCacheTTL)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClearCache(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.PutCache("/a", `{}`))
	require.NoError(t, db.PutCache("/b", `{}`))

	require.NoError(t, db.ClearCache())

	var count int64
	require.NoError(t, db.Model(&models.CachedAPIResponse{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
