package catalog

import (
	"context"
	"strconv"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/models"
)

// SearchModels fetches a page of models matching params, from cache when
// fresh. Failures are returned as errors, never as an empty page.
func (c *Catalog) SearchModels(ctx context.Context, params civitai.ModelParams) (models.PaginatedResult[models.Model], error) {
	key := cacheKey(civitai.EndpointModels, params.Values())
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.ModelListDTO, []byte, error) {
		return c.client.SearchModels(ctx, params)
	})
	if err != nil {
		return models.PaginatedResult[models.Model]{}, err
	}
	return civitai.MapModelList(dto), nil
}

// GetModel fetches a single model by id.
func (c *Catalog) GetModel(ctx context.Context, id int64) (*models.Model, error) {
	key := cacheKey(civitai.EndpointModels+"/"+strconv.FormatInt(id, 10), nil)
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.ModelDTO, []byte, error) {
		return c.client.GetModel(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	model := civitai.MapModel(*dto)
	return &model, nil
}

// GetModelVersion fetches a single model version by id.
func (c *Catalog) GetModelVersion(ctx context.Context, id int64) (*models.ModelVersion, error) {
	key := cacheKey(civitai.EndpointModelVersions+"/"+strconv.FormatInt(id, 10), nil)
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.ModelVersionDTO, []byte, error) {
		return c.client.GetModelVersion(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	version := civitai.MapModelVersion(*dto)
	return &version, nil
}

// GetModelVersionByHash fetches a model version by file hash.
func (c *Catalog) GetModelVersionByHash(ctx context.Context, hash string) (*models.ModelVersion, error) {
	key := cacheKey(civitai.EndpointModelVersions+"/by-hash/"+hash, nil)
	dto, err := fetchCached(ctx, c, key, func(ctx context.Context) (*civitai.ModelVersionDTO, []byte, error) {
		return c.client.GetModelVersionByHash(ctx, hash)
	})
	if err != nil {
		return nil, err
	}
	version := civitai.MapModelVersion(*dto)
	return &version, nil
}
