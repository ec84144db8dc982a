package models

import "time"

// FavoriteModelSummary is a denormalized snapshot of a model captured at
// favorite time. It is intentionally not kept in sync with the live model;
// unfavoriting deletes it and re-favoriting replaces it.
type FavoriteModelSummary struct {
	ModelID       int64     `gorm:"primaryKey;column:model_id" json:"model_id"`
	Name          string    `gorm:"size:255" json:"name"`
	Type          ModelType `gorm:"size:50" json:"type"`
	Nsfw          bool      `json:"nsfw"`
	ThumbnailURL  string    `gorm:"size:1000;column:thumbnail_url" json:"thumbnail_url"`
	CreatorName   string    `gorm:"size:255" json:"creator_name"`
	DownloadCount int64     `gorm:"default:0" json:"download_count"`
	FavoriteCount int64     `gorm:"default:0" json:"favorite_count"`
	Rating        float64   `gorm:"default:0" json:"rating"`

	// Milliseconds since epoch.
	FavoritedAt int64 `gorm:"index" json:"favorited_at"`
}

// TableName specifies the table name for GORM.
func (FavoriteModelSummary) TableName() string {
	return "favorite_models"
}

// FavoritedTime returns the favorited-at timestamp as a time.Time.
func (f *FavoriteModelSummary) FavoritedTime() time.Time {
	return time.UnixMilli(f.FavoritedAt)
}

// NewFavoriteSnapshot captures the favorite-time snapshot of a model.
func NewFavoriteSnapshot(m *Model, now time.Time) FavoriteModelSummary {
	return FavoriteModelSummary{
		ModelID:       m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Nsfw:          m.Nsfw,
		ThumbnailURL:  m.ThumbnailURL(),
		CreatorName:   m.CreatorName(),
		DownloadCount: m.Stats.DownloadCount,
		FavoriteCount: m.Stats.FavoriteCount,
		Rating:        m.Stats.Rating,
		FavoritedAt:   now.UnixMilli(),
	}
}
