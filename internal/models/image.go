package models

import "time"

// NsfwLevel is the ordered content-maturity classification attached to
// images. It is distinct from the boolean Nsfw flag on models.
type NsfwLevel int

// Levels ordered from safest to most explicit.
const (
	NsfwLevelNone NsfwLevel = iota
	NsfwLevelSoft
	NsfwLevelMature
	NsfwLevelX
	NsfwLevelMax
)

var nsfwLevelNames = map[NsfwLevel]string{
	NsfwLevelNone:   "None",
	NsfwLevelSoft:   "Soft",
	NsfwLevelMature: "Mature",
	NsfwLevelX:      "X",
	NsfwLevelMax:    "XXX",
}

// String returns the wire name of the level.
func (l NsfwLevel) String() string {
	if name, ok := nsfwLevelNames[l]; ok {
		return name
	}
	return "None"
}

// ParseNsfwLevel maps a wire string to a level. Unknown values are treated
// as the most restrictive level so they are never shown by accident.
func ParseNsfwLevel(s string) NsfwLevel {
	for level, name := range nsfwLevelNames {
		if name == s {
			return level
		}
	}
	if s == "" {
		return NsfwLevelNone
	}
	return NsfwLevelMax
}

// Image is a rendered sample attached to a model version or returned by
// the images endpoint.
type Image struct {
	ID        int64
	URL       string
	Nsfw      bool
	NsfwLevel NsfwLevel
	Width     int
	Height    int
	Hash      string
	PostID    int64
	Username  string
	CreatedAt time.Time
	Meta      *GenerationMeta
}

// GenerationMeta is the optional generation metadata embedded in an image.
type GenerationMeta struct {
	Prompt         string
	NegativePrompt string
	Sampler        string
	CfgScale       float64
	Steps          int
	Seed           int64
	Model          string
	Size           string
}

// AspectRatio classifies an image by its dimensions.
type AspectRatio int

const (
	AspectAny AspectRatio = iota
	AspectSquare
	AspectPortrait
	AspectLandscape
)

// Aspect returns the image's aspect classification. Equal dimensions are
// square, wider is landscape, taller is portrait.
func (i *Image) Aspect() AspectRatio {
	switch {
	case i.Width == i.Height:
		return AspectSquare
	case i.Width > i.Height:
		return AspectLandscape
	default:
		return AspectPortrait
	}
}
