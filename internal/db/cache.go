package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/riox432/civitdeck/internal/models"
)

// DefaultCacheTTL is how long a cached API response stays fresh.
const DefaultCacheTTL = 15 * time.Minute

// GetCached returns the cached payload for key if it is younger than ttl.
// Expired entries are not deleted here; ClearExpired sweeps them so the
// read path stays cheap and side-effect-free.
func (db *DB) GetCached(key string, ttl time.Duration) (string, bool, error) {
	var row models.CachedAPIResponse
	err := db.Where("cache_key = ?", key).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}

	// Fresh means strictly younger than ttl; a row aged exactly ttl is stale.
	cutoff := time.Now().Add(-ttl).UnixMilli()
	if row.CachedAt <= cutoff {
		return "", false, nil
	}
	return row.ResponseJSON, true, nil
}

// PutCache upserts a raw response payload under key (replace-on-conflict).
func (db *DB) PutCache(key, responseJSON string) error {
	row := models.CachedAPIResponse{
		CacheKey:     key,
		ResponseJSON: responseJSON,
		CachedAt:     time.Now().UnixMilli(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"response_json", "cached_at"}),
	}).Create(&row).Error
}

// ClearExpired deletes all cache rows older than ttl. Intended to run
// periodically, not on every read.
func (db *DB) ClearExpired(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl).UnixMilli()
	res := db.Where("cached_at <= ?", cutoff).Delete(&models.CachedAPIResponse{})
	return res.RowsAffected, res.Error
}

// ClearCache deletes all cached API responses.
func (db *DB) ClearCache() error {
	return db.Where("1 = 1").Delete(&models.CachedAPIResponse{}).Error
}
