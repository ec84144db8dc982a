package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/filter"
	"github.com/riox432/civitdeck/internal/models"
)

// Pagination constants for MCP tool handlers.
const (
	defaultSearchLimit    = 20
	maxSearchLimit        = 100
	defaultFavoritesLimit = 50
	maxFavoritesLimit     = 100
	defaultHistoryLimit   = 10
	maxHistoryLimit       = 50
)

// parseLimit extracts and validates a limit parameter from MCP tool arguments.
// Returns defaultVal if not present, caps at maxVal if exceeded.
func parseLimit(arguments map[string]interface{}, defaultVal, maxVal int) int {
	if l, ok := arguments["limit"].(float64); ok && l > 0 {
		limit := int(l)
		if limit > maxVal {
			return maxVal
		}
		return limit
	}
	return defaultVal
}

// parseModelID extracts a required numeric model_id argument.
func parseModelID(arguments map[string]interface{}) (int64, bool) {
	id, ok := arguments["model_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// trackToolCall is a helper to track MCP tool invocations.
func (s *Server) trackToolCall(toolName string, start time.Time, success bool) {
	if s.telemetry != nil {
		durationMs := time.Since(start).Milliseconds()
		s.telemetry.TrackMCPToolCalled(toolName, durationMs, success)
	}
}

// ModelResponse represents a model in MCP tool responses.
type ModelResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	Nsfw        bool                   `json:"nsfw"`
	Creator     string                 `json:"creator,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Downloads   int64                  `json:"downloads"`
	Rating      float64                `json:"rating"`
	RatingCount int64                  `json:"rating_count"`
	IsFavorite  bool                   `json:"is_favorite"`
	Versions    []ModelVersionResponse `json:"versions,omitempty"`
}

// ModelVersionResponse represents a model version in MCP tool responses.
type ModelVersionResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	BaseModel    string   `json:"base_model,omitempty"`
	TrainedWords []string `json:"trained_words,omitempty"`
	DownloadURL  string   `json:"download_url,omitempty"`
}

// ImageResponse represents an image in MCP tool responses.
type ImageResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	NsfwLevel string `json:"nsfw_level"`
	Username  string `json:"username,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
}

// PageResponse wraps a result list with its pagination cursor.
type PageResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// FavoriteResponse represents a favorite in MCP tool responses.
type FavoriteResponse struct {
	ModelID     int64   `json:"model_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Nsfw        bool    `json:"nsfw"`
	Creator     string  `json:"creator,omitempty"`
	Rating      float64 `json:"rating"`
	FavoritedAt int64   `json:"favorited_at"`
}

// CollectionResponse represents a collection in MCP tool responses.
type CollectionResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsDefault  bool   `json:"is_default"`
	ModelCount int64  `json:"model_count"`
}

// HistoryResponse represents a history entry in MCP tool responses.
type HistoryResponse struct {
	ModelID  int64  `json:"model_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ViewedAt int64  `json:"viewed_at"`
}

// StatsResponse represents local store statistics.
type StatsResponse struct {
	Favorites       int64 `json:"favorites"`
	Collections     int64 `json:"collections"`
	CachedResponses int64 `json:"cached_responses"`
	HistoryEntries  int64 `json:"history_entries"`
	SizeBytes       int64 `json:"size_bytes"`
}

// toModelResponse converts a models.Model to ModelResponse.
func (s *Server) toModelResponse(m *models.Model, includeVersions bool) ModelResponse {
	resp := ModelResponse{
		ID:          m.ID,
		Name:        m.Name,
		Type:        string(m.Type),
		Nsfw:        m.Nsfw,
		Creator:     m.CreatorName(),
		Tags:        m.Tags,
		Downloads:   m.Stats.DownloadCount,
		Rating:      m.Stats.Rating,
		RatingCount: m.Stats.RatingCount,
	}

	if fav, err := s.db.IsFavorite(m.ID); err == nil {
		resp.IsFavorite = fav
	}

	if includeVersions {
		for _, v := range m.Versions {
			resp.Versions = append(resp.Versions, ModelVersionResponse{
				ID:           v.ID,
				Name:         v.Name,
				BaseModel:    v.BaseModel,
				TrainedWords: v.TrainedWords,
				DownloadURL:  v.DownloadURL,
			})
		}
	}

	return resp
}

// toImageResponse converts a models.Image to ImageResponse.
func toImageResponse(img models.Image) ImageResponse {
	resp := ImageResponse{
		ID:        img.ID,
		URL:       img.URL,
		Width:     img.Width,
		Height:    img.Height,
		NsfwLevel: img.NsfwLevel.String(),
		Username:  img.Username,
	}
	if img.Meta != nil {
		resp.Prompt = img.Meta.Prompt
	}
	return resp
}

// handleSearchModels handles the civitdeck_search_models tool.
func (s *Server) handleSearchModels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	params := civitai.ModelParams{
		Limit: parseLimit(req.Params.Arguments, defaultSearchLimit, maxSearchLimit),
	}
	if q, ok := req.Params.Arguments["query"].(string); ok {
		params.Query = q
	}
	if tag, ok := req.Params.Arguments["tag"].(string); ok {
		params.Tag = tag
	}
	if t, ok := req.Params.Arguments["type"].(string); ok && t != "" {
		params.Types = []models.ModelType{models.ParseModelType(t)}
	}
	if cursor, ok := req.Params.Arguments["cursor"].(string); ok {
		params.Cursor = cursor
	}

	prefs, err := s.db.GetPreferences()
	if err != nil {
		s.trackToolCall("civitdeck_search_models", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("load preferences failed: %v", err)), nil
	}
	params.Sort = prefs.DefaultSort
	params.Period = prefs.DefaultPeriod

	page, err := s.catalog.SearchModels(ctx, params)
	if err != nil {
		s.trackToolCall("civitdeck_search_models", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	found := filter.NsfwModels(page.Items, prefs.NsfwFilterLevel)
	hidden, _ := s.db.ListHiddenModels()
	excluded, _ := s.db.ListExcludedTags()
	found = filter.NewPersonalization(hidden, excluded).Models(found)

	resp := PageResponse[ModelResponse]{NextCursor: page.Metadata.NextCursor}
	resp.Items = make([]ModelResponse, 0, len(found))
	for i := range found {
		resp.Items = append(resp.Items, s.toModelResponse(&found[i], false))
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.trackToolCall("civitdeck_search_models", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}

	if s.telemetry != nil {
		s.telemetry.TrackSearchPerformed("models", len(found), false)
	}

	s.trackToolCall("civitdeck_search_models", start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetModel handles the civitdeck_get_model tool.
func (s *Server) handleGetModel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	id, ok := parseModelID(req.Params.Arguments)
	if !ok {
		s.trackToolCall("civitdeck_get_model", start, false)
		return mcp.NewToolResultError("model_id parameter is required"), nil
	}

	model, err := s.catalog.GetModel(ctx, id)
	if err != nil {
		s.trackToolCall("civitdeck_get_model", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to get model: %v", err)), nil
	}

	_ = s.db.RecordHistory(model)

	data, err := json.Marshal(s.toModelResponse(model, true))
	if err != nil {
		s.trackToolCall("civitdeck_get_model", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal model: %v", err)), nil
	}

	if s.telemetry != nil {
		s.telemetry.TrackModelViewed(string(model.Type), model.Nsfw)
	}

	s.trackToolCall("civitdeck_get_model", start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// handleSearchImages handles the civitdeck_search_images tool.
func (s *Server) handleSearchImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	params := civitai.ImageParams{
		Limit: parseLimit(req.Params.Arguments, defaultSearchLimit, maxSearchLimit),
	}
	if id, ok := req.Params.Arguments["model_id"].(float64); ok && id > 0 {
		params.ModelID = int64(id)
	}
	if id, ok := req.Params.Arguments["model_version_id"].(float64); ok && id > 0 {
		params.ModelVersionID = int64(id)
	}
	if u, ok := req.Params.Arguments["username"].(string); ok {
		params.Username = u
	}
	if cursor, ok := req.Params.Arguments["cursor"].(string); ok {
		params.Cursor = cursor
	}

	page, err := s.catalog.SearchImages(ctx, params)
	if err != nil {
		s.trackToolCall("civitdeck_search_images", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	found := page.Items
	if prefs, err := s.db.GetPreferences(); err == nil {
		found = filter.ByNsfwLevel(found, prefs.NsfwFilterLevel)
	}

	resp := PageResponse[ImageResponse]{NextCursor: page.Metadata.NextCursor}
	resp.Items = make([]ImageResponse, 0, len(found))
	for _, img := range found {
		resp.Items = append(resp.Items, toImageResponse(img))
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.trackToolCall("civitdeck_search_images", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}

	if s.telemetry != nil {
		s.telemetry.TrackSearchPerformed("images", len(found), false)
	}

	s.trackToolCall("civitdeck_search_images", start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// handleFavorite handles the civitdeck_favorite tool.
func (s *Server) handleFavorite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	id, ok := parseModelID(req.Params.Arguments)
	if !ok {
		s.trackToolCall("civitdeck_favorite", start, false)
		return mcp.NewToolResultError("model_id parameter is required"), nil
	}

	action, ok := req.Params.Arguments["action"].(string)
	if !ok || (action != "add" && action != "remove") {
		s.trackToolCall("civitdeck_favorite", start, false)
		return mcp.NewToolResultError("action parameter must be 'add' or 'remove'"), nil
	}

	switch action {
	case "add":
		if fav, err := s.db.IsFavorite(id); err == nil && fav {
			s.trackToolCall("civitdeck_favorite", start, true)
			return mcp.NewToolResultText(fmt.Sprintf(`{"success":true,"message":"model %d is already a favorite"}`, id)), nil
		}

		model, err := s.catalog.GetModel(ctx, id)
		if err != nil {
			s.trackToolCall("civitdeck_favorite", start, false)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get model: %v", err)), nil
		}
		if _, err := s.library.ToggleFavorite(model); err != nil {
			s.trackToolCall("civitdeck_favorite", start, false)
			return mcp.NewToolResultError(fmt.Sprintf("failed to add favorite: %v", err)), nil
		}
		if s.telemetry != nil {
			s.telemetry.TrackFavoriteToggled(true)
		}

	case "remove":
		if err := s.library.RemoveFavorite(id); err != nil {
			s.trackToolCall("civitdeck_favorite", start, false)
			return mcp.NewToolResultError(fmt.Sprintf("failed to remove favorite: %v", err)), nil
		}
		if s.telemetry != nil {
			s.telemetry.TrackFavoriteToggled(false)
		}
	}

	s.trackToolCall("civitdeck_favorite", start, true)
	return mcp.NewToolResultText(fmt.Sprintf(`{"success":true,"message":"favorite %s for model %d"}`, action, id)), nil
}

// handleGetFavorites handles the civitdeck_get_favorites tool.
func (s *Server) handleGetFavorites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	limit := parseLimit(req.Params.Arguments, defaultFavoritesLimit, maxFavoritesLimit)

	favs, err := s.db.ListFavorites()
	if err != nil {
		s.trackToolCall("civitdeck_get_favorites", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list favorites: %v", err)), nil
	}
	if len(favs) > limit {
		favs = favs[:limit]
	}

	results := make([]FavoriteResponse, 0, len(favs))
	for _, fav := range favs {
		results = append(results, FavoriteResponse{
			ModelID:     fav.ModelID,
			Name:        fav.Name,
			Type:        string(fav.Type),
			Nsfw:        fav.Nsfw,
			Creator:     fav.CreatorName,
			Rating:      fav.Rating,
			FavoritedAt: fav.FavoritedAt,
		})
	}

	data, err := json.Marshal(results)
	if err != nil {
		s.trackToolCall("civitdeck_get_favorites", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal favorites: %v", err)), nil
	}

	s.trackToolCall("civitdeck_get_favorites", start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// handleListCollections handles the civitdeck_list_collections tool.
func (s *Server) handleListCollections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	cols, err := s.library.Collections()
	if err != nil {
		s.trackToolCall("civitdeck_list_collections", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list collections: %v", err)), nil
	}

	results := make([]CollectionResponse, 0, len(cols))
	for _, col := range cols {
		results = append(results, CollectionResponse{
			ID:         col.ID,
			Name:       col.Name,
			IsDefault:  col.IsDefault,
			ModelCount: col.ModelCount,
		})
	}

	data, err := json.Marshal(results)
	if err != nil {
		s.trackToolCall("civitdeck_list_collections", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal collections: %v", err)), nil
	}

	s.trackToolCall("civitdeck_list_collections", start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetHistory handles the civitdeck_get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	limit := parseLimit(req.Params.Arguments, defaultHistoryLimit, maxHistoryLimit)

	entries, err := s.db.ListHistory(limit)
	if err != nil {
		s.trackToolCall("civitdeck_get_history", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list history: %v", err)), nil
	}

	results := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		results = append(results, HistoryResponse{
			ModelID:  e.ModelID,
			Name:     e.Name,
			Type:     string(e.Type),
			ViewedAt: e.ViewedAt,
		})
	}

	data, err := json.Marshal(results)
	if err != nil {
		s.trackToolCall("civitdeck_get_history", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal history: %v", err)), nil
	}

	s.trackToolCall("civitdeck_get_history", start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetStats handles the civitdeck_get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	stats, err := s.db.GetStats()
	if err != nil {
		s.trackToolCall("civitdeck_get_stats", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	data, err := json.Marshal(StatsResponse{
		Favorites:       stats.Favorites,
		Collections:     stats.Collections,
		CachedResponses: stats.CachedResponses,
		HistoryEntries:  stats.HistoryEntries,
		SizeBytes:       stats.SizeBytes,
	})
	if err != nil {
		s.trackToolCall("civitdeck_get_stats", start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal stats: %v", err)), nil
	}

	s.trackToolCall("civitdeck_get_stats", start, true)
	return mcp.NewToolResultText(string(data)), nil
}
