package filter

import (
	"github.com/riox432/civitdeck/internal/models"
)

// Personalization removes hidden models and models carrying excluded tags
// from a result stream.
type Personalization struct {
	hiddenIDs    map[int64]struct{}
	excludedTags map[string]struct{}
}

// NewPersonalization builds a personalization filter from the local sets.
func NewPersonalization(hidden []models.HiddenModel, excluded []models.ExcludedTag) Personalization {
	p := Personalization{
		hiddenIDs:    make(map[int64]struct{}, len(hidden)),
		excludedTags: make(map[string]struct{}, len(excluded)),
	}
	for _, h := range hidden {
		p.hiddenIDs[h.ModelID] = struct{}{}
	}
	for _, t := range excluded {
		p.excludedTags[t.Tag] = struct{}{}
	}
	return p
}

// Empty reports whether the filter would pass everything.
func (p Personalization) Empty() bool {
	return len(p.hiddenIDs) == 0 && len(p.excludedTags) == 0
}

// Allows reports whether a model passes the personalization sets.
func (p Personalization) Allows(m models.Model) bool {
	if _, hidden := p.hiddenIDs[m.ID]; hidden {
		return false
	}
	for _, tag := range m.Tags {
		if _, excluded := p.excludedTags[tag]; excluded {
			return false
		}
	}
	return true
}

// Models filters a model list, preserving order. An empty filter returns
// the input unchanged.
func (p Personalization) Models(in []models.Model) []models.Model {
	if p.Empty() {
		return in
	}
	out := in[:0:0]
	for _, m := range in {
		if p.Allows(m) {
			out = append(out, m)
		}
	}
	return out
}
