package models

// NsfwFilterLevel gates which image maturity levels are shown.
// Levels are ordered Off < Soft < All.
type NsfwFilterLevel string

const (
	// NsfwFilterOff passes only images whose level is exactly None.
	NsfwFilterOff NsfwFilterLevel = "Off"
	// NsfwFilterSoft passes None and Soft.
	NsfwFilterSoft NsfwFilterLevel = "Soft"
	// NsfwFilterAll passes everything, including Mature and above.
	NsfwFilterAll NsfwFilterLevel = "All"
)

// ParseNsfwFilterLevel maps a stored name to a filter level, defaulting to
// the most restrictive setting on unknown input.
func ParseNsfwFilterLevel(s string) NsfwFilterLevel {
	switch s {
	case string(NsfwFilterSoft):
		return NsfwFilterSoft
	case string(NsfwFilterAll):
		return NsfwFilterAll
	default:
		return NsfwFilterOff
	}
}

// SortOrder is a model search ordering. Wire strings differ from the
// variant names and live in the remote client's lookup tables.
type SortOrder string

const (
	SortHighestRated   SortOrder = "HighestRated"
	SortMostDownloaded SortOrder = "MostDownloaded"
	SortNewest         SortOrder = "Newest"
)

// ImageSortOrder is an image search ordering.
type ImageSortOrder string

const (
	ImageSortHighestRated ImageSortOrder = "HighestRated"
	ImageSortMostComments ImageSortOrder = "MostComments"
	ImageSortNewest       ImageSortOrder = "Newest"
)

// TimePeriod bounds search results to a trailing window.
type TimePeriod string

const (
	PeriodAllTime TimePeriod = "AllTime"
	PeriodYear    TimePeriod = "Year"
	PeriodMonth   TimePeriod = "Month"
	PeriodWeek    TimePeriod = "Week"
	PeriodDay     TimePeriod = "Day"
)

// UserPreferencesID is the fixed primary key of the singleton row.
const UserPreferencesID int64 = 1

// UserPreferences is the singleton settings row. Exactly one row with id=1
// exists at all times; writes use upsert semantics.
type UserPreferences struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	NsfwFilterLevel NsfwFilterLevel `gorm:"size:20;default:Off;column:nsfw_filter_level" json:"nsfw_filter_level"`
	DefaultSort     SortOrder       `gorm:"size:50;default:HighestRated" json:"default_sort"`
	DefaultPeriod   TimePeriod      `gorm:"size:20;default:AllTime" json:"default_period"`
	GridColumns     int             `gorm:"default:2" json:"grid_columns"`
	APIKey          string          `gorm:"size:255;column:api_key" json:"-"`
	TrackingID      string          `gorm:"size:64;column:tracking_id" json:"-"`
	LastRunVersion  string          `gorm:"size:50;column:last_run_version" json:"-"`

	// Milliseconds since epoch.
	UpdatedAt int64 `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserPreferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences returns the seed row.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ID:              UserPreferencesID,
		NsfwFilterLevel: NsfwFilterOff,
		DefaultSort:     SortHighestRated,
		DefaultPeriod:   PeriodAllTime,
		GridColumns:     2,
	}
}
