package catalog

import (
	"context"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/models"
)

// SearchImages fetches a page of images matching params.
func (c *Catalog) SearchImages(ctx context.Context, params civitai.ImageParams) (models.PaginatedResult[models.Image], error) {
	key := cacheKey(civitai.EndpointImages, params.Values())
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.ImageListDTO, []byte, error) {
		return c.client.SearchImages(ctx, params)
	})
	if err != nil {
		return models.PaginatedResult[models.Image]{}, err
	}
	return civitai.MapImageList(dto), nil
}
