package models

// CachedAPIResponse is a raw API payload stored under its request cache key.
// Rows are written on every successful remote fetch, validated against the
// TTL on read, and purged by a periodic sweep.
type CachedAPIResponse struct {
	CacheKey     string `gorm:"primaryKey;size:512;column:cache_key" json:"cache_key"`
	ResponseJSON string `gorm:"type:text;column:response_json" json:"response_json"`
	CachedAt     int64  `gorm:"index" json:"cached_at"` // ms since epoch
}

// TableName specifies the table name for GORM.
func (CachedAPIResponse) TableName() string {
	return "cached_api_responses"
}
