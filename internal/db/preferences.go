package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/riox432/civitdeck/internal/models"
)

// GetPreferences retrieves the singleton preferences row.
func (db *DB) GetPreferences() (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := db.Where("id = ?", models.UserPreferencesID).First(&prefs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			defaults := models.DefaultPreferences()
			return &defaults, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// updatePreference upserts selected columns of the singleton row.
func (db *DB) updatePreference(prefs models.UserPreferences, columns ...string) error {
	prefs.ID = models.UserPreferencesID
	prefs.UpdatedAt = time.Now().UnixMilli()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(&prefs).Error
}

// SetNsfwFilterLevel updates the NSFW filter level.
func (db *DB) SetNsfwFilterLevel(level models.NsfwFilterLevel) error {
	return db.updatePreference(models.UserPreferences{NsfwFilterLevel: level}, "nsfw_filter_level")
}

// SetDefaultSort updates the default model sort order.
func (db *DB) SetDefaultSort(sort models.SortOrder) error {
	return db.updatePreference(models.UserPreferences{DefaultSort: sort}, "default_sort")
}

// SetDefaultPeriod updates the default time period.
func (db *DB) SetDefaultPeriod(period models.TimePeriod) error {
	return db.updatePreference(models.UserPreferences{DefaultPeriod: period}, "default_period")
}

// SetGridColumns updates the grid column count.
func (db *DB) SetGridColumns(cols int) error {
	return db.updatePreference(models.UserPreferences{GridColumns: cols}, "grid_columns")
}

// SetAPIKey updates the stored API key.
func (db *DB) SetAPIKey(key string) error {
	return db.updatePreference(models.UserPreferences{APIKey: key}, "api_key")
}

// SetLastRunVersion records the build version that last touched the store.
func (db *DB) SetLastRunVersion(v string) error {
	return db.updatePreference(models.UserPreferences{LastRunVersion: v}, "last_run_version")
}

// GetOrCreateTrackingID returns the persistent tracking ID, creating one
// if it doesn't exist. On any error it falls back to a per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	prefs, err := db.GetPreferences()
	if err != nil {
		return uuid.New().String()
	}
	if prefs.TrackingID != "" {
		return prefs.TrackingID
	}

	trackingID := uuid.New().String()
	if err := db.updatePreference(models.UserPreferences{TrackingID: trackingID}, "tracking_id"); err != nil {
		// Even if the save fails, use the generated ID for this session.
		return trackingID
	}
	return trackingID
}
