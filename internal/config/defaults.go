package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		API: APIConfig{
			BaseURL:   "https://civitai.com/api/v1",
			RateLimit: 60,
		},

		Cache: CacheConfig{
			TTLMinutes: 15,
		},
	}
}
