package civitai

import (
	"github.com/riox432/civitdeck/internal/models"
)

// Pure DTO-to-domain translation. Mapping never reorders lists: version
// and image order is preserved exactly as returned by the source.

// numeric nsfwLevel values used by some API responses.
var numericNsfwLevels = map[string]models.NsfwLevel{
	"1":  models.NsfwLevelNone,
	"2":  models.NsfwLevelSoft,
	"4":  models.NsfwLevelMature,
	"8":  models.NsfwLevelX,
	"16": models.NsfwLevelMax,
	"32": models.NsfwLevelMax,
}

// MapMetadata converts pagination metadata.
func MapMetadata(dto MetadataDTO) models.PageMetadata {
	return models.PageMetadata{
		NextCursor: string(dto.NextCursor),
		NextPage:   string(dto.NextPage),
		TotalItems: dto.TotalItems,
		TotalPages: dto.TotalPages,
	}
}

// MapModel converts a model DTO to the domain entity.
func MapModel(dto ModelDTO) models.Model {
	m := models.Model{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Type:        models.ParseModelType(dto.Type),
		Nsfw:        dto.Nsfw,
		Tags:        append([]string{}, dto.Tags...),
		Stats:       mapStats(dto.Stats),
	}
	if dto.Creator != nil {
		creator := MapCreator(*dto.Creator)
		m.Creator = &creator
	}
	m.Versions = make([]models.ModelVersion, 0, len(dto.ModelVersions))
	for _, v := range dto.ModelVersions {
		version := MapModelVersion(v)
		if version.ModelID == 0 {
			version.ModelID = dto.ID
		}
		m.Versions = append(m.Versions, version)
	}
	return m
}

// MapModelList converts a model page.
func MapModelList(dto *ModelListDTO) models.PaginatedResult[models.Model] {
	items := make([]models.Model, 0, len(dto.Items))
	for _, m := range dto.Items {
		items = append(items, MapModel(m))
	}
	return models.PaginatedResult[models.Model]{
		Items:    items,
		Metadata: MapMetadata(dto.Metadata),
	}
}

// MapModelVersion converts a version DTO.
func MapModelVersion(dto ModelVersionDTO) models.ModelVersion {
	v := models.ModelVersion{
		ID:           dto.ID,
		ModelID:      dto.ModelID,
		Name:         dto.Name,
		CreatedAt:    dto.CreatedAt,
		BaseModel:    dto.BaseModel,
		TrainedWords: append([]string{}, dto.TrainedWords...),
		DownloadURL:  dto.DownloadURL,
	}
	v.Files = make([]models.ModelFile, 0, len(dto.Files))
	for _, f := range dto.Files {
		v.Files = append(v.Files, mapFile(f))
	}
	v.Images = make([]models.Image, 0, len(dto.Images))
	for _, img := range dto.Images {
		v.Images = append(v.Images, MapImage(img))
	}
	if dto.Stats != nil {
		stats := mapStats(*dto.Stats)
		v.Stats = &stats
	}
	return v
}

func mapFile(dto ModelFileDTO) models.ModelFile {
	return models.ModelFile{
		ID:          dto.ID,
		Name:        dto.Name,
		SizeKB:      dto.SizeKB,
		Type:        dto.Type,
		Format:      dto.Metadata.Format,
		HashSHA256:  dto.Hashes["SHA256"],
		DownloadURL: dto.DownloadURL,
		Primary:     dto.Primary,
	}
}

func mapStats(dto StatsDTO) models.ModelStats {
	return models.ModelStats{
		DownloadCount: dto.DownloadCount,
		FavoriteCount: dto.FavoriteCount,
		CommentCount:  dto.CommentCount,
		RatingCount:   dto.RatingCount,
		Rating:        dto.Rating,
	}
}

// MapImage converts an image DTO, resolving the maturity level from
// whichever wire shape the response used.
func MapImage(dto ImageDTO) models.Image {
	img := models.Image{
		ID:        dto.ID,
		URL:       dto.URL,
		Nsfw:      dto.Nsfw.Flag,
		NsfwLevel: resolveNsfwLevel(dto),
		Width:     dto.Width,
		Height:    dto.Height,
		Hash:      dto.Hash,
		PostID:    dto.PostID,
		Username:  dto.Username,
		CreatedAt: dto.CreatedAt,
	}
	if dto.Meta != nil {
		img.Meta = &models.GenerationMeta{
			Prompt:         dto.Meta.Prompt,
			NegativePrompt: dto.Meta.NegativePrompt,
			Sampler:        dto.Meta.Sampler,
			CfgScale:       dto.Meta.CfgScale,
			Steps:          dto.Meta.Steps,
			Seed:           dto.Meta.Seed,
			Model:          dto.Meta.Model,
			Size:           dto.Meta.Size,
		}
	}
	return img
}

func resolveNsfwLevel(dto ImageDTO) models.NsfwLevel {
	if dto.Nsfw.Level != "" {
		return models.ParseNsfwLevel(dto.Nsfw.Level)
	}
	if lvl, ok := numericNsfwLevels[string(dto.NsfwLevel)]; ok {
		return lvl
	}
	if string(dto.NsfwLevel) != "" && string(dto.NsfwLevel) != "0" {
		return models.ParseNsfwLevel(string(dto.NsfwLevel))
	}
	if dto.Nsfw.Flag {
		return models.NsfwLevelMature
	}
	return models.NsfwLevelNone
}

// MapImageList converts an image page.
func MapImageList(dto *ImageListDTO) models.PaginatedResult[models.Image] {
	items := make([]models.Image, 0, len(dto.Items))
	for _, img := range dto.Items {
		items = append(items, MapImage(img))
	}
	return models.PaginatedResult[models.Image]{
		Items:    items,
		Metadata: MapMetadata(dto.Metadata),
	}
}

// MapCreator converts a creator DTO.
func MapCreator(dto CreatorDTO) models.Creator {
	return models.Creator{
		Username:   dto.Username,
		ImageURL:   dto.Image,
		ModelCount: dto.ModelCount,
		Link:       dto.Link,
	}
}

// MapCreatorList converts a creator page.
func MapCreatorList(dto *CreatorListDTO) models.PaginatedResult[models.Creator] {
	items := make([]models.Creator, 0, len(dto.Items))
	for _, c := range dto.Items {
		items = append(items, MapCreator(c))
	}
	return models.PaginatedResult[models.Creator]{
		Items:    items,
		Metadata: MapMetadata(dto.Metadata),
	}
}

// MapTag converts a tag DTO.
func MapTag(dto TagDTO) models.Tag {
	return models.Tag{
		Name:       dto.Name,
		ModelCount: dto.ModelCount,
		Link:       dto.Link,
	}
}

// MapTagList converts a tag page.
func MapTagList(dto *TagListDTO) models.PaginatedResult[models.Tag] {
	items := make([]models.Tag, 0, len(dto.Items))
	for _, t := range dto.Items {
		items = append(items, MapTag(t))
	}
	return models.PaginatedResult[models.Tag]{
		Items:    items,
		Metadata: MapMetadata(dto.Metadata),
	}
}
