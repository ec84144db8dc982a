package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the CivitDeck MCP server.

// searchModelsTool returns the civitdeck_search_models tool definition.
func searchModelsTool() mcp.Tool {
	return mcp.NewTool("civitdeck_search_models",
		mcp.WithDescription("Search generative-art models in the CivitAI catalog. Results are cached locally, and the user's hidden models, excluded tags and NSFW preference are applied."),
		mcp.WithString("query",
			mcp.Description("Search query matched against model names"),
		),
		mcp.WithString("tag",
			mcp.Description("Filter by tag"),
		),
		mcp.WithString("type",
			mcp.Description("Filter by model type (Checkpoint, LORA, TextualInversion, ...)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 20, max: 100)"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous response"),
		),
	)
}

// getModelTool returns the civitdeck_get_model tool definition.
func getModelTool() mcp.Tool {
	return mcp.NewTool("civitdeck_get_model",
		mcp.WithDescription("Get detailed information about a model including versions, files and trigger words. Viewing a model records it in browsing history."),
		mcp.WithNumber("model_id",
			mcp.Required(),
			mcp.Description("The model's numeric id"),
		),
	)
}

// searchImagesTool returns the civitdeck_search_images tool definition.
func searchImagesTool() mcp.Tool {
	return mcp.NewTool("civitdeck_search_images",
		mcp.WithDescription("Search rendered images in the CivitAI catalog. The user's NSFW preference is applied to the results."),
		mcp.WithNumber("model_id",
			mcp.Description("Filter by model id"),
		),
		mcp.WithNumber("model_version_id",
			mcp.Description("Filter by model version id"),
		),
		mcp.WithString("username",
			mcp.Description("Filter by creator username"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 20, max: 100)"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous response"),
		),
	)
}

// favoriteTool returns the civitdeck_favorite tool definition.
func favoriteTool() mcp.Tool {
	return mcp.NewTool("civitdeck_favorite",
		mcp.WithDescription("Add or remove a model from the user's favorites."),
		mcp.WithNumber("model_id",
			mcp.Required(),
			mcp.Description("The model's numeric id"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Action to perform: 'add' or 'remove'"),
		),
	)
}

// getFavoritesTool returns the civitdeck_get_favorites tool definition.
func getFavoritesTool() mcp.Tool {
	return mcp.NewTool("civitdeck_get_favorites",
		mcp.WithDescription("Get the user's favorite models, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 50, max: 100)"),
		),
	)
}

// listCollectionsTool returns the civitdeck_list_collections tool definition.
func listCollectionsTool() mcp.Tool {
	return mcp.NewTool("civitdeck_list_collections",
		mcp.WithDescription("List the user's model collections with member counts."),
	)
}

// getHistoryTool returns the civitdeck_get_history tool definition.
func getHistoryTool() mcp.Tool {
	return mcp.NewTool("civitdeck_get_history",
		mcp.WithDescription("Get recently viewed models, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10, max: 50)"),
		),
	)
}

// getStatsTool returns the civitdeck_get_stats tool definition.
func getStatsTool() mcp.Tool {
	return mcp.NewTool("civitdeck_get_stats",
		mcp.WithDescription("Get local store statistics: favorites, collections, cached responses and history entries."),
	)
}
