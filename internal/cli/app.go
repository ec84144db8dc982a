package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/riox432/civitdeck/internal/catalog"
	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/config"
	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/library"
	"github.com/riox432/civitdeck/pkg/version"
)

// app bundles the shared dependencies a command needs: config, the local
// store, the remote client behind the cache, and the library facade.
type app struct {
	cfg     *config.Config
	db      *db.DB
	catalog *catalog.Catalog
	library *library.Library
}

// openApp loads configuration and opens the local store. An API key stored
// in preferences takes precedence over the one from config or environment.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	apiKey := cfg.API.Key
	if prefs, err := database.GetPreferences(); err == nil {
		if prefs.APIKey != "" {
			apiKey = prefs.APIKey
		}
		if prev := recordVersionChange(database, prefs.LastRunVersion); prev != "" {
			fmt.Fprintf(os.Stderr, "civitdeck updated: %s -> %s\n", prev, version.Version)
		}
	}

	client := civitai.NewClient(apiKey,
		civitai.WithBaseURL(cfg.API.BaseURL),
		civitai.WithRateLimit(cfg.API.RateLimit),
	)

	cat := catalog.New(client, database)
	if cfg.Cache.TTLMinutes > 0 {
		cat = cat.WithTTL(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	}

	return &app{
		cfg:     cfg,
		db:      database,
		catalog: cat,
		library: library.New(database),
	}, nil
}

// recordVersionChange keeps the stored last-run version current. It returns
// the previous version only when the running build is a semver upgrade over
// it, which is when an update notice is worth showing.
func recordVersionChange(database *db.DB, last string) string {
	if last == version.Version {
		return ""
	}
	if err := database.SetLastRunVersion(version.Version); err != nil {
		return ""
	}
	if last != "" && version.IsNewer(version.Version, last) {
		return last
	}
	return ""
}

// Close drains pending cache writes, then releases the local store.
func (a *app) Close() {
	a.catalog.Close()
	_ = a.db.Close()
}
