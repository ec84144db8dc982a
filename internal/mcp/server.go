// Package mcp provides the Model Context Protocol server for CivitDeck.
//
// The server exposes the CivitAI catalog and the local library (favorites,
// collections, history) to MCP-compatible clients. It reuses internal/catalog
// and internal/db so cached responses and stored state behave exactly as
// they do in the CLI.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/riox432/civitdeck/internal/catalog"
	"github.com/riox432/civitdeck/internal/config"
	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/library"
	"github.com/riox432/civitdeck/internal/telemetry"
	"github.com/riox432/civitdeck/pkg/version"
)

// Server wraps the MCP server with CivitDeck-specific functionality.
type Server struct {
	db        *db.DB
	cfg       *config.Config
	catalog   *catalog.Catalog
	library   *library.Library
	server    *server.MCPServer
	telemetry telemetry.Client
}

// NewServer creates a new MCP server instance.
func NewServer(database *db.DB, cfg *config.Config, cat *catalog.Catalog, tc telemetry.Client) *Server {
	s := &Server{
		db:        database,
		cfg:       cfg,
		catalog:   cat,
		library:   library.New(database),
		telemetry: tc,
	}

	s.server = server.NewMCPServer(
		"civitdeck",
		version.Version,
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	// Expired cache entries accumulate between sessions; best-effort sweep.
	_, _ = s.catalog.ClearExpiredCache()

	return server.ServeStdio(s.server)
}

// registerTools adds all CivitDeck tools to the MCP server.
func (s *Server) registerTools() {
	s.server.AddTool(searchModelsTool(), s.handleSearchModels)
	s.server.AddTool(getModelTool(), s.handleGetModel)
	s.server.AddTool(searchImagesTool(), s.handleSearchImages)
	s.server.AddTool(favoriteTool(), s.handleFavorite)
	s.server.AddTool(getFavoritesTool(), s.handleGetFavorites)
	s.server.AddTool(listCollectionsTool(), s.handleListCollections)
	s.server.AddTool(getHistoryTool(), s.handleGetHistory)
	s.server.AddTool(getStatsTool(), s.handleGetStats)
}
