package db

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/riox432/civitdeck/internal/models"
)

// historyLimit caps the browsing history table.
const historyLimit = 200

// AddExcludedTag adds a tag to the exclusion set. Idempotent.
func (db *DB) AddExcludedTag(tag string) error {
	row := models.ExcludedTag{Tag: tag, AddedAt: time.Now().UnixMilli()}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// RemoveExcludedTag removes a tag from the exclusion set. Idempotent.
func (db *DB) RemoveExcludedTag(tag string) error {
	return db.Delete(&models.ExcludedTag{}, "tag = ?", tag).Error
}

// ListExcludedTags returns the exclusion set, newest first.
func (db *DB) ListExcludedTags() ([]models.ExcludedTag, error) {
	var tags []models.ExcludedTag
	err := db.Order("added_at DESC").Find(&tags).Error
	return tags, err
}

// HideModel adds a model to the hidden set. Idempotent.
func (db *DB) HideModel(modelID int64, name string) error {
	row := models.HiddenModel{ModelID: modelID, Name: name, AddedAt: time.Now().UnixMilli()}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// UnhideModel removes a model from the hidden set. Idempotent.
func (db *DB) UnhideModel(modelID int64) error {
	return db.Delete(&models.HiddenModel{}, "model_id = ?", modelID).Error
}

// ListHiddenModels returns the hidden set, newest first.
func (db *DB) ListHiddenModels() ([]models.HiddenModel, error) {
	var hidden []models.HiddenModel
	err := db.Order("added_at DESC").Find(&hidden).Error
	return hidden, err
}

// IsModelHidden reports whether modelID is hidden.
func (db *DB) IsModelHidden(modelID int64) (bool, error) {
	var count int64
	err := db.Model(&models.HiddenModel{}).Where("model_id = ?", modelID).Count(&count).Error
	return count > 0, err
}

// RecordHistory appends a browsing history entry and prunes the table to
// the history cap. Repeated views of the same model collapse to a single
// entry with a refreshed timestamp.
func (db *DB) RecordHistory(model *models.Model) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Delete(&models.BrowsingHistoryEntry{}, "model_id = ?", model.ID).Error; err != nil {
			return err
		}
		entry := models.BrowsingHistoryEntry{
			ModelID:      model.ID,
			Name:         model.Name,
			Type:         model.Type,
			ThumbnailURL: model.ThumbnailURL(),
			ViewedAt:     time.Now().UnixMilli(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.pruneHistory()
	})
}

// ListHistory returns browsing history, most recently viewed first.
func (db *DB) ListHistory(limit int) ([]models.BrowsingHistoryEntry, error) {
	var entries []models.BrowsingHistoryEntry
	query := db.Order("viewed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// ClearHistory deletes all browsing history.
func (db *DB) ClearHistory() error {
	return db.Where("1 = 1").Delete(&models.BrowsingHistoryEntry{}).Error
}

// pruneHistory drops the oldest entries beyond the history cap.
func (db *DB) pruneHistory() error {
	var count int64
	if err := db.Model(&models.BrowsingHistoryEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= historyLimit {
		return nil
	}
	return db.Exec(`DELETE FROM browsing_history WHERE id NOT IN (
		SELECT id FROM browsing_history ORDER BY viewed_at DESC LIMIT ?)`, historyLimit).Error
}
