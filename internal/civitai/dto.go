package civitai

import (
	"bytes"
	"encoding/json"
	"time"
)

// Wire DTOs for the CivitAI REST API. Deserialization is lenient: unknown
// fields are ignored, missing counts default to zero and missing lists to
// empty. Domain translation lives in mapper.go.

// ModelListDTO is the payload of GET /models.
type ModelListDTO struct {
	Items    []ModelDTO  `json:"items"`
	Metadata MetadataDTO `json:"metadata"`
}

// MetadataDTO carries pagination state. The cursor is opaque and must not
// be parsed by the client.
type MetadataDTO struct {
	NextCursor  FlexString `json:"nextCursor"`
	NextPage    FlexString `json:"nextPage"`
	CurrentPage int64      `json:"currentPage"`
	PageSize    int64      `json:"pageSize"`
	TotalItems  int64      `json:"totalItems"`
	TotalPages  int64      `json:"totalPages"`
}

// FlexString accepts a JSON string or number and stores it verbatim.
// Cursors have shipped as both over the API's lifetime.
type FlexString string

// UnmarshalJSON implements lenient decoding.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexString(num.String())
	return nil
}

// ModelDTO is a single catalog model on the wire.
type ModelDTO struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Type          string            `json:"type"`
	Nsfw          bool              `json:"nsfw"`
	Tags          []string          `json:"tags"`
	Creator       *CreatorDTO       `json:"creator"`
	Stats         StatsDTO          `json:"stats"`
	ModelVersions []ModelVersionDTO `json:"modelVersions"`
}

// StatsDTO holds aggregate counters.
type StatsDTO struct {
	DownloadCount int64   `json:"downloadCount"`
	FavoriteCount int64   `json:"favoriteCount"`
	CommentCount  int64   `json:"commentCount"`
	RatingCount   int64   `json:"ratingCount"`
	Rating        float64 `json:"rating"`
}

// ModelVersionDTO is a version nested in a model, or the payload of
// GET /model-versions/{id}.
type ModelVersionDTO struct {
	ID           int64          `json:"id"`
	ModelID      int64          `json:"modelId"`
	Name         string         `json:"name"`
	CreatedAt    time.Time      `json:"createdAt"`
	BaseModel    string         `json:"baseModel"`
	TrainedWords []string       `json:"trainedWords"`
	DownloadURL  string         `json:"downloadUrl"`
	Files        []ModelFileDTO `json:"files"`
	Images       []ImageDTO     `json:"images"`
	Stats        *StatsDTO      `json:"stats"`
}

// ModelFileDTO is a downloadable artifact on the wire.
type ModelFileDTO struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	SizeKB      float64           `json:"sizeKB"`
	Type        string            `json:"type"`
	Metadata    FileMetadataDTO   `json:"metadata"`
	Hashes      map[string]string `json:"hashes"`
	DownloadURL string            `json:"downloadUrl"`
	Primary     bool              `json:"primary"`
}

// FileMetadataDTO describes the file format.
type FileMetadataDTO struct {
	Format string `json:"format"`
	Size   string `json:"size"`
	Fp     string `json:"fp"`
}

// ImageListDTO is the payload of GET /images.
type ImageListDTO struct {
	Items    []ImageDTO  `json:"items"`
	Metadata MetadataDTO `json:"metadata"`
}

// ImageDTO is an image on the wire. The nsfw field is a maturity string on
// newer responses and a bare boolean on older ones; NsfwField absorbs both.
type ImageDTO struct {
	ID        int64         `json:"id"`
	URL       string        `json:"url"`
	Nsfw      NsfwField     `json:"nsfw"`
	NsfwLevel FlexString    `json:"nsfwLevel"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Hash      string        `json:"hash"`
	PostID    int64         `json:"postId"`
	Username  string        `json:"username"`
	CreatedAt time.Time     `json:"createdAt"`
	Meta      *ImageMetaDTO `json:"meta"`
}

// NsfwField accepts either a boolean flag or a maturity level string.
type NsfwField struct {
	Flag  bool
	Level string
}

// UnmarshalJSON implements lenient decoding of the nsfw field.
func (f *NsfwField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Level = s
		f.Flag = s != "" && s != "None"
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	f.Flag = b
	return nil
}

// ImageMetaDTO is the optional generation metadata of an image. The API
// uses capitalized keys for the model name and size.
type ImageMetaDTO struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negativePrompt"`
	Sampler        string  `json:"sampler"`
	CfgScale       float64 `json:"cfgScale"`
	Steps          int     `json:"steps"`
	Seed           int64   `json:"seed"`
	Model          string  `json:"Model"`
	Size           string  `json:"Size"`
}

// CreatorListDTO is the payload of GET /creators.
type CreatorListDTO struct {
	Items    []CreatorDTO `json:"items"`
	Metadata MetadataDTO  `json:"metadata"`
}

// CreatorDTO is a catalog creator on the wire.
type CreatorDTO struct {
	Username   string `json:"username"`
	Image      string `json:"image"`
	ModelCount int64  `json:"modelCount"`
	Link       string `json:"link"`
}

// TagListDTO is the payload of GET /tags.
type TagListDTO struct {
	Items    []TagDTO    `json:"items"`
	Metadata MetadataDTO `json:"metadata"`
}

// TagDTO is a catalog tag on the wire.
type TagDTO struct {
	Name       string `json:"name"`
	ModelCount int64  `json:"modelCount"`
	Link       string `json:"link"`
}
