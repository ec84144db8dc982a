// Package config handles application configuration management.
// Precedence: defaults, then the optional YAML config file, then
// environment variables (a .env file is honored when present).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all CivitDeck data.
	BaseDir string `yaml:"base_dir"`

	// API holds CivitAI API settings.
	API APIConfig `yaml:"api"`

	// Cache holds response-cache settings.
	Cache CacheConfig `yaml:"cache"`
}

// APIConfig holds CivitAI API settings.
type APIConfig struct {
	// BaseURL of the public REST API.
	BaseURL string `yaml:"base_url"`
	// Key is the optional API token sent as a bearer token.
	Key string `yaml:"key"`
	// RateLimit is requests per minute.
	RateLimit int `yaml:"rate_limit"`
}

// CacheConfig holds response-cache settings.
type CacheConfig struct {
	// TTLMinutes is how long a cached response stays fresh.
	TTLMinutes int `yaml:"ttl_minutes"`
}

// Load reads configuration from the config file and environment.
func Load() (*Config, error) {
	// A .env in the working directory is a convenience for development.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// The base dir override must land before the file read so the config
	// file is looked up under the selected base dir.
	if dir := os.Getenv("CIVITDECK_BASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	}

	if err := loadFile(cfg, GetPaths(cfg).Config); err != nil {
		return nil, err
	}

	if dir := os.Getenv("CIVITDECK_BASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if base := os.Getenv("CIVITAI_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if key := os.Getenv("CIVITAI_API_KEY"); key != "" {
		cfg.API.Key = key
	}
	if limit := os.Getenv("CIVITDECK_RATE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.API.RateLimit = n
		}
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges the YAML config file into cfg when the file exists.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).Logs,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
