package db

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/riox432/civitdeck/internal/models"
)

// AddFavorite inserts or replaces a favorite snapshot.
func (db *DB) AddFavorite(fav models.FavoriteModelSummary) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}},
		UpdateAll: true,
	}).Create(&fav).Error
}

// RemoveFavorite deletes the favorite for modelID. Idempotent.
func (db *DB) RemoveFavorite(modelID int64) error {
	return db.Delete(&models.FavoriteModelSummary{}, "model_id = ?", modelID).Error
}

// ToggleFavorite removes the favorite when present, otherwise inserts a
// snapshot captured now. Returns true when the model is a favorite after
// the call.
func (db *DB) ToggleFavorite(model *models.Model) (bool, error) {
	var favorited bool
	err := db.Transaction(func(tx *DB) error {
		var count int64
		if err := tx.Model(&models.FavoriteModelSummary{}).
			Where("model_id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return tx.Delete(&models.FavoriteModelSummary{}, "model_id = ?", model.ID).Error
		}
		favorited = true
		fav := models.NewFavoriteSnapshot(model, time.Now())
		return tx.Create(&fav).Error
	})
	return favorited, err
}

// IsFavorite reports whether modelID is favorited.
func (db *DB) IsFavorite(modelID int64) (bool, error) {
	var count int64
	err := db.Model(&models.FavoriteModelSummary{}).
		Where("model_id = ?", modelID).Count(&count).Error
	return count > 0, err
}

// ListFavorites returns all favorites, most recently favorited first.
func (db *DB) ListFavorites() ([]models.FavoriteModelSummary, error) {
	var favs []models.FavoriteModelSummary
	err := db.Order("favorited_at DESC").Find(&favs).Error
	return favs, err
}

// CountFavorites returns the number of favorites.
func (db *DB) CountFavorites() (int64, error) {
	var count int64
	err := db.Model(&models.FavoriteModelSummary{}).Count(&count).Error
	return count, err
}
