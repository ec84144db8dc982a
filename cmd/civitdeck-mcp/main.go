// Package main provides the civitdeck-mcp server.
//
// civitdeck-mcp exposes the CivitAI catalog and the local CivitDeck library
// via the Model Context Protocol, so MCP-compatible clients can search
// models, browse images and manage favorites and collections.
//
// Usage:
//
//	civitdeck-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riox432/civitdeck/internal/catalog"
	"github.com/riox432/civitdeck/internal/civitai"
	"github.com/riox432/civitdeck/internal/config"
	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/log"
	"github.com/riox432/civitdeck/internal/mcp"
	"github.com/riox432/civitdeck/internal/telemetry"
	"github.com/riox432/civitdeck/pkg/version"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("civitdeck-mcp %s\n", version.Version)
		os.Exit(0)
	}

	// Handle --help flag
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	// Setup context with cancellation on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and initialize database
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)

	// Stdout carries the MCP protocol, so only the error path of the
	// logger may be used here; it writes to stderr and the log file.
	if err := log.Init(paths.Logs); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	apiKey := cfg.API.Key
	if prefs, err := database.GetPreferences(); err == nil && prefs.APIKey != "" {
		apiKey = prefs.APIKey
	}

	client := civitai.NewClient(apiKey,
		civitai.WithBaseURL(cfg.API.BaseURL),
		civitai.WithRateLimit(cfg.API.RateLimit),
	)

	cat := catalog.New(client, database)
	if cfg.Cache.TTLMinutes > 0 {
		cat = cat.WithTTL(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	}
	// Registered after the database close so pending cache writes drain
	// before the store goes away.
	defer cat.Close()

	telemetryClient := telemetry.New(database)
	defer telemetryClient.Close()

	// Create and run MCP server
	server := mcp.NewServer(database, cfg, cat, telemetryClient)
	if err := server.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `civitdeck-mcp - MCP server for the CivitDeck catalog browser

USAGE:
    civitdeck-mcp [FLAGS]

FLAGS:
    -h, --help       Print this help message
    -v, --version    Print version information

DESCRIPTION:
    civitdeck-mcp is a Model Context Protocol (MCP) server that exposes the
    CivitAI catalog and the local CivitDeck library to MCP-compatible
    clients.

    The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).

CONFIGURATION:
    Add to your client's MCP configuration:

    {
      "mcpServers": {
        "civitdeck": {
          "type": "stdio",
          "command": "civitdeck-mcp"
        }
      }
    }

TOOLS PROVIDED:
    civitdeck_search_models     Search catalog models
    civitdeck_get_model         Get model details, versions and files
    civitdeck_search_images     Search rendered images
    civitdeck_favorite          Add or remove a favorite
    civitdeck_get_favorites     Get favorite models
    civitdeck_list_collections  List model collections
    civitdeck_get_history       Get recently viewed models
    civitdeck_get_stats         Get local store statistics
`
	fmt.Print(help)
}
