// CivitDeck - Offline-aware CivitAI catalog browser
//
// A CLI for browsing generative-art models, images, creators and tags from
// the CivitAI catalog, with a local response cache and a SQLite store for
// favorites, collections, history and preferences.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riox432/civitdeck/internal/cli"
	"github.com/riox432/civitdeck/internal/config"
	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/log"
	"github.com/riox432/civitdeck/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open database for persistent tracking ID
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.Logs); err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	// Use persistent tracking ID from database
	telemetryClient := telemetry.New(database)
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
