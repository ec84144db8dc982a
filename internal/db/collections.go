package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/riox432/civitdeck/internal/models"
)

// ErrDefaultCollection is returned when a mutation targets the reserved
// "Favorites" collection.
var ErrDefaultCollection = errors.New("the default collection cannot be renamed or deleted")

// ErrCollectionNotFound is returned when a collection id does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

// CreateCollection creates a new named collection.
func (db *DB) CreateCollection(name string) (*models.ModelCollection, error) {
	now := time.Now().UnixMilli()
	col := models.ModelCollection{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&col).Error; err != nil {
		return nil, err
	}
	return &col, nil
}

// GetCollection retrieves a collection by id with derived fields populated.
func (db *DB) GetCollection(id int64) (*models.ModelCollection, error) {
	var col models.ModelCollection
	err := db.First(&col, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	if err := db.fillDerived(&col); err != nil {
		return nil, err
	}
	return &col, nil
}

// ListCollections returns all collections, default first then by creation
// time, with model counts and thumbnails derived from their entries.
func (db *DB) ListCollections() ([]models.ModelCollection, error) {
	var cols []models.ModelCollection
	if err := db.Order("is_default DESC, created_at ASC").Find(&cols).Error; err != nil {
		return nil, err
	}
	for i := range cols {
		if err := db.fillDerived(&cols[i]); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

// fillDerived populates ModelCount and the thumbnail of the most recently
// added member.
func (db *DB) fillDerived(col *models.ModelCollection) error {
	if err := db.Model(&models.CollectionModelEntry{}).
		Where("collection_id = ?", col.ID).Count(&col.ModelCount).Error; err != nil {
		return err
	}
	var latest models.CollectionModelEntry
	err := db.Where("collection_id = ?", col.ID).
		Order("added_at DESC").First(&latest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	col.ThumbnailURL = latest.ThumbnailURL
	return nil
}

// RenameCollection renames a collection. The default collection is
// rejected before any write.
func (db *DB) RenameCollection(id int64, name string) error {
	if id == models.DefaultCollectionID {
		return ErrDefaultCollection
	}
	res := db.Model(&models.ModelCollection{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// DeleteCollection deletes a collection and cascades to its entries.
// The default collection is rejected before any write.
func (db *DB) DeleteCollection(id int64) error {
	if id == models.DefaultCollectionID {
		return ErrDefaultCollection
	}
	return db.Transaction(func(tx *DB) error {
		if err := tx.Delete(&models.CollectionModelEntry{}, "collection_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ModelCollection{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCollectionNotFound
		}
		return nil
	})
}

// AddModelToCollection inserts or replaces a membership entry.
func (db *DB) AddModelToCollection(entry models.CollectionModelEntry) error {
	return db.Transaction(func(tx *DB) error {
		var count int64
		if err := tx.Model(&models.ModelCollection{}).
			Where("id = ?", entry.CollectionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCollectionNotFound
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}, {Name: "model_id"}},
			UpdateAll: true,
		}).Create(&entry).Error; err != nil {
			return err
		}
		return tx.touchCollection(entry.CollectionID)
	})
}

// RemoveModelFromCollection removes a membership entry. Idempotent.
func (db *DB) RemoveModelFromCollection(collectionID, modelID int64) error {
	return db.Delete(&models.CollectionModelEntry{},
		"collection_id = ? AND model_id = ?", collectionID, modelID).Error
}

// ListCollectionModels returns a collection's entries, most recently
// added first.
func (db *DB) ListCollectionModels(collectionID int64) ([]models.CollectionModelEntry, error) {
	var entries []models.CollectionModelEntry
	err := db.Where("collection_id = ?", collectionID).
		Order("added_at DESC").Find(&entries).Error
	return entries, err
}

// CollectionContains reports membership of modelID in collectionID.
func (db *DB) CollectionContains(collectionID, modelID int64) (bool, error) {
	var count int64
	err := db.Model(&models.CollectionModelEntry{}).
		Where("collection_id = ? AND model_id = ?", collectionID, modelID).
		Count(&count).Error
	return count > 0, err
}

// BulkRemoveModels removes the given model ids from a collection in one
// transaction: either all rows change or none do.
func (db *DB) BulkRemoveModels(collectionID int64, modelIDs []int64) error {
	if len(modelIDs) == 0 {
		return nil
	}
	return db.Transaction(func(tx *DB) error {
		if err := tx.Delete(&models.CollectionModelEntry{},
			"collection_id = ? AND model_id IN ?", collectionID, modelIDs).Error; err != nil {
			return err
		}
		return tx.touchCollection(collectionID)
	})
}

// BulkMoveModels moves model ids from one collection to another as a
// remove-then-insert per id. When the destination already contains an id
// the source entry is still removed, so the net effect is membership, not
// accumulation. The whole move is atomic.
func (db *DB) BulkMoveModels(from, to int64, modelIDs []int64) error {
	if len(modelIDs) == 0 {
		return nil
	}
	return db.Transaction(func(tx *DB) error {
		var count int64
		if err := tx.Model(&models.ModelCollection{}).Where("id = ?", to).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCollectionNotFound
		}

		now := time.Now().UnixMilli()
		for _, id := range modelIDs {
			var entry models.CollectionModelEntry
			err := tx.Where("collection_id = ? AND model_id = ?", from, id).First(&entry).Error
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					continue
				}
				return err
			}

			if err := tx.Delete(&models.CollectionModelEntry{},
				"collection_id = ? AND model_id = ?", from, id).Error; err != nil {
				return err
			}

			entry.CollectionID = to
			entry.AddedAt = now
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection_id"}, {Name: "model_id"}},
				UpdateAll: true,
			}).Create(&entry).Error; err != nil {
				return err
			}
		}

		if err := tx.touchCollection(from); err != nil {
			return err
		}
		return tx.touchCollection(to)
	})
}

// touchCollection bumps a collection's updated_at timestamp.
func (db *DB) touchCollection(id int64) error {
	return db.Model(&models.ModelCollection{}).Where("id = ?", id).
		Update("updated_at", time.Now().UnixMilli()).Error
}
