package models

import "time"

// DefaultCollectionID is the reserved "Favorites" collection. It is seeded
// at first use and protected from rename and delete.
const DefaultCollectionID int64 = 1

// DefaultCollectionName is the display name of the reserved collection.
const DefaultCollectionName = "Favorites"

// ModelCollection is a user-defined group of models.
type ModelCollection struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`

	// Milliseconds since epoch.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`

	// Derived on read, not stored: member count and the thumbnail of the
	// most-recently-added member.
	ModelCount   int64  `gorm:"-" json:"model_count"`
	ThumbnailURL string `gorm:"-" json:"thumbnail_url"`
}

// TableName specifies the table name for GORM.
func (ModelCollection) TableName() string {
	return "collections"
}

// CreatedTime returns the creation timestamp as a time.Time.
func (c *ModelCollection) CreatedTime() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

// CollectionModelEntry is a model's membership in a collection, with the
// same denormalized snapshot semantics as FavoriteModelSummary. Entries are
// cascade-deleted with their parent collection.
type CollectionModelEntry struct {
	CollectionID int64           `gorm:"primaryKey;autoIncrement:false" json:"collection_id"`
	Collection   ModelCollection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"-"`
	ModelID      int64           `gorm:"primaryKey;autoIncrement:false;column:model_id" json:"model_id"`

	Name          string    `gorm:"size:255" json:"name"`
	Type          ModelType `gorm:"size:50" json:"type"`
	Nsfw          bool      `json:"nsfw"`
	ThumbnailURL  string    `gorm:"size:1000;column:thumbnail_url" json:"thumbnail_url"`
	CreatorName   string    `gorm:"size:255" json:"creator_name"`
	DownloadCount int64     `gorm:"default:0" json:"download_count"`
	FavoriteCount int64     `gorm:"default:0" json:"favorite_count"`
	Rating        float64   `gorm:"default:0" json:"rating"`

	// Milliseconds since epoch.
	AddedAt int64 `gorm:"index" json:"added_at"`
}

// TableName specifies the table name for GORM.
func (CollectionModelEntry) TableName() string {
	return "collection_model_entries"
}

// NewCollectionEntry captures a model snapshot for collection membership.
func NewCollectionEntry(collectionID int64, m *Model, now time.Time) CollectionModelEntry {
	return CollectionModelEntry{
		CollectionID:  collectionID,
		ModelID:       m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Nsfw:          m.Nsfw,
		ThumbnailURL:  m.ThumbnailURL(),
		CreatorName:   m.CreatorName(),
		DownloadCount: m.Stats.DownloadCount,
		FavoriteCount: m.Stats.FavoriteCount,
		Rating:        m.Stats.Rating,
		AddedAt:       now.UnixMilli(),
	}
}
