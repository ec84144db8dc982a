package models

// ExcludedTag is a tag the user never wants in result streams.
type ExcludedTag struct {
	Tag     string `gorm:"primaryKey;size:255" json:"tag"`
	AddedAt int64  `json:"added_at"` // ms since epoch
}

// TableName specifies the table name for GORM.
func (ExcludedTag) TableName() string {
	return "excluded_tags"
}

// HiddenModel hides a single model from result streams. Only the id is
// referenced; the model itself is never locally owned in full.
type HiddenModel struct {
	ModelID int64  `gorm:"primaryKey;column:model_id" json:"model_id"`
	Name    string `gorm:"size:255" json:"name"`
	AddedAt int64  `json:"added_at"` // ms since epoch
}

// TableName specifies the table name for GORM.
func (HiddenModel) TableName() string {
	return "hidden_models"
}

// BrowsingHistoryEntry records a model detail view.
type BrowsingHistoryEntry struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ModelID      int64     `gorm:"index;column:model_id" json:"model_id"`
	Name         string    `gorm:"size:255" json:"name"`
	Type         ModelType `gorm:"size:50" json:"type"`
	ThumbnailURL string    `gorm:"size:1000;column:thumbnail_url" json:"thumbnail_url"`
	ViewedAt     int64     `gorm:"index" json:"viewed_at"` // ms since epoch
}

// TableName specifies the table name for GORM.
func (BrowsingHistoryEntry) TableName() string {
	return "browsing_history"
}
