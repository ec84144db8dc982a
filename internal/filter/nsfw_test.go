package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

func img(id int64, level models.NsfwLevel) models.Image {
	return models.Image{ID: id, NsfwLevel: level}
}

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name  string
		level models.NsfwFilterLevel
		image models.NsfwLevel
		want  bool
	}{
		{"off passes none", models.NsfwFilterOff, models.NsfwLevelNone, true},
		{"off blocks soft", models.NsfwFilterOff, models.NsfwLevelSoft, false},
		{"off blocks mature", models.NsfwFilterOff, models.NsfwLevelMature, false},
		{"soft passes none", models.NsfwFilterSoft, models.NsfwLevelNone, true},
		{"soft passes soft", models.NsfwFilterSoft, models.NsfwLevelSoft, true},
		{"soft blocks mature", models.NsfwFilterSoft, models.NsfwLevelMature, false},
		{"soft blocks max", models.NsfwFilterSoft, models.NsfwLevelMax, false},
		{"all passes max", models.NsfwFilterAll, models.NsfwLevelMax, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(img(1, tt.image), tt.level))
		})
	}
}

func TestByNsfwLevel_PreservesOrder(t *testing.T) {
	in := []models.Image{
		img(1, models.NsfwLevelNone),
		img(2, models.NsfwLevelMature),
		img(3, models.NsfwLevelSoft),
		img(4, models.NsfwLevelNone),
	}

	out := ByNsfwLevel(in, models.NsfwFilterSoft)
	require.Len(t, out, 3)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
	assert.Equal(t, int64(4), out[2].ID)
}

func TestByNsfwLevel_AllIsIdentity(t *testing.T) {
	in := []models.Image{img(1, models.NsfwLevelMax), img(2, models.NsfwLevelNone)}
	assert.Equal(t, in, ByNsfwLevel(in, models.NsfwFilterAll))
}

func TestNsfwModels_DropsModelWithNoPassingImages(t *testing.T) {
	in := []models.Model{
		{
			ID: 1,
			Versions: []models.ModelVersion{
				{Images: []models.Image{img(1, models.NsfwLevelNone), img(2, models.NsfwLevelMax)}},
			},
		},
		{
			ID: 2,
			Versions: []models.ModelVersion{
				{Images: []models.Image{img(3, models.NsfwLevelMature)}},
				{Images: []models.Image{img(4, models.NsfwLevelX)}},
			},
		},
		{
			ID: 3,
			Versions: []models.ModelVersion{
				{Images: []models.Image{img(5, models.NsfwLevelSoft)}},
			},
		},
	}

	out := NsfwModels(in, models.NsfwFilterSoft)
	require.Len(t, out, 2)

	// Model 1 survives with the explicit image stripped.
	assert.Equal(t, int64(1), out[0].ID)
	require.Len(t, out[0].Versions[0].Images, 1)
	assert.Equal(t, int64(1), out[0].Versions[0].Images[0].ID)

	// Model 2 has no passing images at all and is dropped entirely.
	assert.Equal(t, int64(3), out[1].ID)
}

func TestNsfwModels_AllIsIdentity(t *testing.T) {
	in := []models.Model{
		{ID: 1, Versions: []models.ModelVersion{{Images: []models.Image{img(1, models.NsfwLevelMax)}}}},
	}
	out := NsfwModels(in, models.NsfwFilterAll)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Versions[0].Images, 1)
}

func TestNsfwModels_DoesNotMutateInput(t *testing.T) {
	in := []models.Model{
		{
			ID: 1,
			Versions: []models.ModelVersion{
				{Images: []models.Image{img(1, models.NsfwLevelNone), img(2, models.NsfwLevelMax)}},
			},
		},
	}

	_ = NsfwModels(in, models.NsfwFilterOff)
	assert.Len(t, in[0].Versions[0].Images, 2, "caller's slice must stay intact")
}
