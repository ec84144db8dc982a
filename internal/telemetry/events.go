package telemetry

// Event names.
const (
	EventCLICommandExecuted = "cli_command_executed"
	EventSearchPerformed    = "search_performed"
	EventModelViewed        = "model_viewed"
	EventFavoriteToggled    = "favorite_toggled"
	EventCollectionChanged  = "collection_changed"
	EventSettingsChanged    = "settings_changed"
	EventCacheSwept         = "cache_swept"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventMCPToolCalled      = "mcp_tool_called"
)

// TrackCLICommandExecuted records a CLI command run.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	c.Track(EventCLICommandExecuted, map[string]interface{}{
		"command_name": commandName,
		"has_flags":    hasFlags,
		"duration_ms":  durationMs,
	})
}

// TrackSearchPerformed records a catalog search. Only the result shape is
// tracked, never the query text.
func (c *posthogClient) TrackSearchPerformed(kind string, resultCount int, fromCache bool) {
	c.Track(EventSearchPerformed, map[string]interface{}{
		"kind":         kind,
		"result_count": resultCount,
		"from_cache":   fromCache,
	})
}

// TrackModelViewed records a model detail view.
func (c *posthogClient) TrackModelViewed(modelType string, nsfw bool) {
	c.Track(EventModelViewed, map[string]interface{}{
		"model_type": modelType,
		"nsfw":       nsfw,
	})
}

// TrackFavoriteToggled records a favorite toggle.
func (c *posthogClient) TrackFavoriteToggled(favorited bool) {
	c.Track(EventFavoriteToggled, map[string]interface{}{
		"favorited": favorited,
	})
}

// TrackCollectionChanged records a collection mutation.
func (c *posthogClient) TrackCollectionChanged(action string, modelCount int) {
	c.Track(EventCollectionChanged, map[string]interface{}{
		"action":      action,
		"model_count": modelCount,
	})
}

// TrackSettingsChanged records a preference update by setting name only.
func (c *posthogClient) TrackSettingsChanged(settingName string) {
	c.Track(EventSettingsChanged, map[string]interface{}{
		"setting_name": settingName,
	})
}

// TrackCacheSwept records a cache sweep.
func (c *posthogClient) TrackCacheSwept(removed int64) {
	c.Track(EventCacheSwept, map[string]interface{}{
		"removed": removed,
	})
}

// TrackCLIError records a classified CLI error.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	c.Track(EventCLIErrorOccurred, map[string]interface{}{
		"command_name": commandName,
		"error_type":   errorType,
	})
}

// TrackMCPToolCalled records an MCP tool invocation.
func (c *posthogClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	c.Track(EventMCPToolCalled, map[string]interface{}{
		"tool_name":   toolName,
		"duration_ms": durationMs,
		"success":     success,
	})
}

// No-op implementations for disabled telemetry.

func (c *noopClient) TrackCLICommandExecuted(string, bool, int64) {}
func (c *noopClient) TrackSearchPerformed(string, int, bool)      {}
func (c *noopClient) TrackModelViewed(string, bool)               {}
func (c *noopClient) TrackFavoriteToggled(bool)                   {}
func (c *noopClient) TrackCollectionChanged(string, int)          {}
func (c *noopClient) TrackSettingsChanged(string)                 {}
func (c *noopClient) TrackCacheSwept(int64)                       {}
func (c *noopClient) TrackCLIError(string, string)                {}
func (c *noopClient) TrackMCPToolCalled(string, int64, bool)      {}
