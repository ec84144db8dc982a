package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Config   string // Config file
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "civitdeck.db"),
		Config:   filepath.Join(cfg.BaseDir, "config.yaml"),
		Logs:     filepath.Join(cfg.BaseDir, "logs"),
	}
}

// DefaultBaseDir returns the default base directory, preferring the XDG
// data home and falling back to a dot directory under $HOME.
func DefaultBaseDir() string {
	if xdg.DataHome != "" {
		return filepath.Join(xdg.DataHome, "civitdeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".civitdeck"
	}
	return filepath.Join(home, ".civitdeck")
}
