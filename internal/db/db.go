// Package db provides a GORM-based local store for CivitDeck.
// It uses the pure-Go SQLite driver and owns the durable schema:
// favorites, collections, cached API responses, preferences, excluded
// tags, hidden models and browsing history.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/riox432/civitdeck/internal/models"
)

// DB wraps the GORM database connection with CivitDeck-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection, runs migrations and seeds the
// default collection and the preferences singleton.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.seedDefaultCollection(); err != nil {
		return nil, fmt.Errorf("seed default collection: %w", err)
	}

	if err := wrapped.seedPreferences(); err != nil {
		return nil, fmt.Errorf("seed preferences: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all persisted models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.FavoriteModelSummary{},
		&models.ModelCollection{},
		&models.CollectionModelEntry{},
		&models.CachedAPIResponse{},
		&models.UserPreferences{},
		&models.ExcludedTag{},
		&models.HiddenModel{},
		&models.BrowsingHistoryEntry{},
	)
}

// seedDefaultCollection ensures the reserved "Favorites" collection exists.
func (db *DB) seedDefaultCollection() error {
	def := models.ModelCollection{
		ID:        models.DefaultCollectionID,
		Name:      models.DefaultCollectionName,
		IsDefault: true,
		CreatedAt: time.Now().UnixMilli(),
		UpdatedAt: time.Now().UnixMilli(),
	}
	return db.Where("id = ?", models.DefaultCollectionID).FirstOrCreate(&def).Error
}

// seedPreferences ensures the singleton preferences row exists.
func (db *DB) seedPreferences() error {
	prefs := models.DefaultPreferences()
	prefs.UpdatedAt = time.Now().UnixMilli()
	return db.Where("id = ?", models.UserPreferencesID).FirstOrCreate(&prefs).Error
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// Stats holds aggregate statistics about the local store.
type Stats struct {
	Favorites       int64
	Collections     int64
	CachedResponses int64
	HistoryEntries  int64
	SizeBytes       int64
}

// GetStats returns aggregate statistics about the database.
func (db *DB) GetStats() (*Stats, error) {
	var stats Stats

	if err := db.Model(&models.FavoriteModelSummary{}).Count(&stats.Favorites).Error; err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	if err := db.Model(&models.ModelCollection{}).Count(&stats.Collections).Error; err != nil {
		return nil, fmt.Errorf("count collections: %w", err)
	}
	if err := db.Model(&models.CachedAPIResponse{}).Count(&stats.CachedResponses).Error; err != nil {
		return nil, fmt.Errorf("count cached responses: %w", err)
	}
	if err := db.Model(&models.BrowsingHistoryEntry{}).Count(&stats.HistoryEntries).Error; err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.SizeBytes = info.Size()
	}

	return &stats, nil
}
