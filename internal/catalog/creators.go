package catalog

import (
	"context"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/models"
)

// SearchCreators fetches a page of creators matching params.
func (c *Catalog) SearchCreators(ctx context.Context, params civitai.CreatorParams) (models.PaginatedResult[models.Creator], error) {
	key := cacheKey(civitai.EndpointCreators, params.Values())
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.CreatorListDTO, []byte, error) {
		return c.client.SearchCreators(ctx, params)
	})
	if err != nil {
		return models.PaginatedResult[models.Creator]{}, err
	}
	return civitai.MapCreatorList(dto), nil
}
