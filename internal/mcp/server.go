package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"github.com/dshills/codeatlas/internal/config"
	"github.com/dshills/codeatlas/internal/history"
	"github.com/dshills/codeatlas/internal/indexer"
)

const (
	// ServerName is the MCP server name
	ServerName = "codeatlas"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer() (*Server, error) {
	s := &Server{
		mcp: server.NewMCPServer(ServerName, ServerVersion),
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(indexCodebaseTool(), s.handleIndexCodebase)
	s.mcp.AddTool(searchIndexTool(), s.handleSearchIndex)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}

// newIndexer wires an indexer for a project root: git revision history,
// wrapped in the sqlite cache when enabled. A cache that fails to open
// degrades to the uncached provider.
func newIndexer(root string, cfg *config.Config) (*indexer.Indexer, func()) {
	var provider history.Provider = history.NewGitProvider(root)
	cleanup := func() {}

	if cfg.HistoryCache {
		cached, err := history.NewCachedProvider(provider, root, cfg.CachePath())
		if err != nil {
			log.Warn().Err(err).Msg("revision cache unavailable, querying git directly")
		} else {
			provider = cached
			cleanup = func() { _ = cached.Close() }
		}
	}

	return indexer.New(provider, indexer.LogReporter{}), cleanup
}
