// Package filter holds pure, stateless filters applied to already-fetched
// domain lists. No I/O happens here.
package filter

import (
	"github.com/riox432/civitdeck/internal/models"
)

// IsAllowed reports whether an image passes the given filter level.
// Off passes only level None; Soft passes None and Soft; All passes
// everything. Levels above Soft are gated exclusively by All.
func IsAllowed(img models.Image, level models.NsfwFilterLevel) bool {
	switch level {
	case models.NsfwFilterAll:
		return true
	case models.NsfwFilterSoft:
		return img.NsfwLevel <= models.NsfwLevelSoft
	default:
		return img.NsfwLevel == models.NsfwLevelNone
	}
}

// ByNsfwLevel filters images by level, preserving original order.
// At level All the input is returned unchanged.
func ByNsfwLevel(images []models.Image, level models.NsfwFilterLevel) []models.Image {
	if level == models.NsfwFilterAll {
		return images
	}
	out := images[:0:0]
	for _, img := range images {
		if IsAllowed(img, level) {
			out = append(out, img)
		}
	}
	return out
}

// NsfwModels filters every version's image list of every model. A model
// whose versions all end up with zero images is dropped entirely: a model
// with no passing imagery is not shown at all. Order of survivors is
// preserved. At level All the input is returned unchanged.
func NsfwModels(in []models.Model, level models.NsfwFilterLevel) []models.Model {
	if level == models.NsfwFilterAll {
		return in
	}
	out := in[:0:0]
	for _, m := range in {
		remaining := 0
		versions := make([]models.ModelVersion, 0, len(m.Versions))
		for _, v := range m.Versions {
			v.Images = ByNsfwLevel(v.Images, level)
			remaining += len(v.Images)
			versions = append(versions, v)
		}
		if remaining == 0 {
			continue
		}
		m.Versions = versions
		out = append(out, m)
	}
	return out
}
