package catalog

import (
	"context"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/models"
)

// SearchTags fetches a page of tags matching params.
func (c *Catalog) SearchTags(ctx context.Context, params civitai.TagParams) (models.PaginatedResult[models.Tag], error) {
	key := cacheKey(civitai.EndpointTags, params.Values())
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.TagListDTO, []byte, error) {
		return c.client.SearchTags(ctx, params)
	})
	if err != nil {
		return models.PaginatedResult[models.Tag]{}, err
	}
	return civitai.MapTagList(dto), nil
}
