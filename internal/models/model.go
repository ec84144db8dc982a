// Package models defines the core data structures for CivitDeck.
package models

import "time"

// ModelType is the closed set of model types exposed by the CivitAI catalog.
type ModelType string

// Known model types. Unknown wire values map to ModelTypeOther.
const (
	ModelTypeCheckpoint        ModelType = "Checkpoint"
	ModelTypeTextualInversion  ModelType = "TextualInversion"
	ModelTypeHypernetwork      ModelType = "Hypernetwork"
	ModelTypeAestheticGradient ModelType = "AestheticGradient"
	ModelTypeLORA              ModelType = "LORA"
	ModelTypeLoCon             ModelType = "LoCon"
	ModelTypeDoRA              ModelType = "DoRA"
	ModelTypeControlnet        ModelType = "Controlnet"
	ModelTypeUpscaler          ModelType = "Upscaler"
	ModelTypeMotionModule      ModelType = "MotionModule"
	ModelTypeVAE               ModelType = "VAE"
	ModelTypePoses             ModelType = "Poses"
	ModelTypeWildcards         ModelType = "Wildcards"
	ModelTypeWorkflows         ModelType = "Workflows"
	ModelTypeOther             ModelType = "Other"
)

// ValidModelTypes returns all model types accepted as search filters.
func ValidModelTypes() []ModelType {
	return []ModelType{
		ModelTypeCheckpoint, ModelTypeTextualInversion, ModelTypeHypernetwork,
		ModelTypeAestheticGradient, ModelTypeLORA, ModelTypeLoCon, ModelTypeDoRA,
		ModelTypeControlnet, ModelTypeUpscaler, ModelTypeMotionModule,
		ModelTypeVAE, ModelTypePoses, ModelTypeWildcards, ModelTypeWorkflows,
		ModelTypeOther,
	}
}

// ParseModelType maps a wire string to a ModelType, falling back to Other.
func ParseModelType(s string) ModelType {
	for _, t := range ValidModelTypes() {
		if string(t) == s {
			return t
		}
	}
	return ModelTypeOther
}

// Model is a catalog model as returned by the remote API.
// IDs are stable numeric identities; versions are ordered newest-first
// as returned by the source.
type Model struct {
	ID          int64
	Name        string
	Description string
	Type        ModelType
	Nsfw        bool
	Tags        []string
	Creator     *Creator
	Stats       ModelStats
	Versions    []ModelVersion
}

// ThumbnailURL returns the first image URL of the newest version, or "".
func (m *Model) ThumbnailURL() string {
	for _, v := range m.Versions {
		for _, img := range v.Images {
			if img.URL != "" {
				return img.URL
			}
		}
	}
	return ""
}

// CreatorName returns the creator's username, or "" when absent.
func (m *Model) CreatorName() string {
	if m.Creator == nil {
		return ""
	}
	return m.Creator.Username
}

// ModelStats holds aggregate counters for a model or version.
type ModelStats struct {
	DownloadCount int64
	FavoriteCount int64
	CommentCount  int64
	RatingCount   int64
	Rating        float64
}

// ModelVersion belongs to exactly one Model.
type ModelVersion struct {
	ID           int64
	ModelID      int64
	Name         string
	CreatedAt    time.Time
	BaseModel    string
	TrainedWords []string
	DownloadURL  string
	Files        []ModelFile
	Images       []Image
	Stats        *ModelStats
}

// ModelFile is a downloadable artifact attached to a version.
type ModelFile struct {
	ID          int64
	Name        string
	SizeKB      float64
	Type        string
	Format      string
	HashSHA256  string
	DownloadURL string
	Primary     bool
}

// Creator is a catalog user that publishes models.
type Creator struct {
	Username   string
	ImageURL   string
	ModelCount int64
	Link       string
}

// Tag is a catalog tag with usage counts.
type Tag struct {
	Name       string
	ModelCount int64
	Link       string
}
