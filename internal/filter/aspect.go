package filter

import (
	"github.com/riox432/civitdeck/internal/models"
)

// ByAspect retains only images matching the wanted aspect ratio,
// preserving original order. AspectAny returns the input unchanged.
// Classification is exact: equal dimensions are square, wider is
// landscape, taller is portrait. No tolerance band is applied.
func ByAspect(images []models.Image, want models.AspectRatio) []models.Image {
	if want == models.AspectAny {
		return images
	}
	out := images[:0:0]
	for _, img := range images {
		if img.Aspect() == want {
			out = append(out, img)
		}
	}
	return out
}
