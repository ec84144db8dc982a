package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

func sized(id int64, w, h int) models.Image {
	return models.Image{ID: id, Width: w, Height: h}
}

func TestByAspect(t *testing.T) {
	in := []models.Image{
		sized(1, 512, 512),
		sized(2, 512, 768),
		sized(3, 768, 512),
		sized(4, 1024, 1024),
	}

	square := ByAspect(in, models.AspectSquare)
	require.Len(t, square, 2)
	assert.Equal(t, int64(1), square[0].ID)
	assert.Equal(t, int64(4), square[1].ID)

	portrait := ByAspect(in, models.AspectPortrait)
	require.Len(t, portrait, 1)
	assert.Equal(t, int64(2), portrait[0].ID)

	landscape := ByAspect(in, models.AspectLandscape)
	require.Len(t, landscape, 1)
	assert.Equal(t, int64(3), landscape[0].ID)
}

func TestByAspect_AnyIsIdentity(t *testing.T) {
	in := []models.Image{sized(1, 512, 768), sized(2, 512, 512)}
	assert.Equal(t, in, ByAspect(in, models.AspectAny))
}

func TestByAspect_ExactClassification(t *testing.T) {
	// One pixel off square is not square. No tolerance band.
	almost := sized(1, 512, 513)
	assert.Empty(t, ByAspect([]models.Image{almost}, models.AspectSquare))
	assert.Len(t, ByAspect([]models.Image{almost}, models.AspectPortrait), 1)
}
