package civitai

import (
	"net/url"
	"strconv"

	"github.com/riox432/civitdeck/internal/models"
)

// API endpoints, relative to the base URL.
const (
	EndpointModels        = "/models"
	EndpointImages        = "/images"
	EndpointCreators      = "/creators"
	EndpointTags          = "/tags"
	EndpointModelVersions = "/model-versions"
)

// Enum-to-wire lookup tables. The API expects display strings that differ
// from the enum variant names, and the image endpoint uses different sort
// literals than the model endpoint. These are fixed tables, never derived
// from the variant identifiers.
var modelSortWire = map[models.SortOrder]string{
	models.SortHighestRated:   "Highest Rated",
	models.SortMostDownloaded: "Most Downloaded",
	models.SortNewest:         "Newest",
}

var imageSortWire = map[models.ImageSortOrder]string{
	models.ImageSortHighestRated: "Most Reactions",
	models.ImageSortMostComments: "Most Comments",
	models.ImageSortNewest:       "Newest",
}

var periodWire = map[models.TimePeriod]string{
	models.PeriodAllTime: "AllTime",
	models.PeriodYear:    "Year",
	models.PeriodMonth:   "Month",
	models.PeriodWeek:    "Week",
	models.PeriodDay:     "Day",
}

// ModelParams are the optional filters of the /models endpoint. Zero-value
// fields are omitted from the query string, never sent as empty tokens.
type ModelParams struct {
	Query      string
	Tag        string
	Username   string
	Types      []models.ModelType
	Sort       models.SortOrder
	Period     models.TimePeriod
	BaseModels []string
	Nsfw       *bool
	Limit      int
	Cursor     string
}

// Values encodes the set parameters as a query string.
func (p ModelParams) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	if p.Tag != "" {
		v.Set("tag", p.Tag)
	}
	if p.Username != "" {
		v.Set("username", p.Username)
	}
	for _, t := range p.Types {
		v.Add("types", string(t))
	}
	if p.Sort != "" {
		v.Set("sort", modelSortWire[p.Sort])
	}
	if p.Period != "" {
		v.Set("period", periodWire[p.Period])
	}
	for _, b := range p.BaseModels {
		v.Add("baseModels", b)
	}
	if p.Nsfw != nil {
		v.Set("nsfw", strconv.FormatBool(*p.Nsfw))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	return v
}

// ImageParams are the optional filters of the /images endpoint.
type ImageParams struct {
	ModelID        int64
	ModelVersionID int64
	PostID         int64
	Username       string
	Sort           models.ImageSortOrder
	Period         models.TimePeriod
	Nsfw           *bool
	Limit          int
	Cursor         string
}

// Values encodes the set parameters as a query string.
func (p ImageParams) Values() url.Values {
	v := url.Values{}
	if p.ModelID > 0 {
		v.Set("modelId", strconv.FormatInt(p.ModelID, 10))
	}
	if p.ModelVersionID > 0 {
		v.Set("modelVersionId", strconv.FormatInt(p.ModelVersionID, 10))
	}
	if p.PostID > 0 {
		v.Set("postId", strconv.FormatInt(p.PostID, 10))
	}
	if p.Username != "" {
		v.Set("username", p.Username)
	}
	if p.Sort != "" {
		v.Set("sort", imageSortWire[p.Sort])
	}
	if p.Period != "" {
		v.Set("period", periodWire[p.Period])
	}
	if p.Nsfw != nil {
		v.Set("nsfw", strconv.FormatBool(*p.Nsfw))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	return v
}

// CreatorParams are the optional filters of the /creators endpoint.
type CreatorParams struct {
	Query  string
	Limit  int
	Page   int
	Cursor string
}

// Values encodes the set parameters as a query string.
func (p CreatorParams) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	return v
}

// TagParams are the optional filters of the /tags endpoint.
type TagParams struct {
	Query  string
	Limit  int
	Page   int
	Cursor string
}

// Values encodes the set parameters as a query string.
func (p TagParams) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	return v
}
