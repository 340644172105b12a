package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/rxnsmiles-mcp/internal/batch"
	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/rxnsmiles"
	"github.com/dshills/rxnsmiles-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "rxnsmiles-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.rxnsmiles"
	// DatabaseFileName is the database file inside the database directory
	DatabaseFileName = "reactions.db"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	config  *Config
	logger  *slog.Logger
	storage storage.Storage
	toolkit *chem.CachedToolkit
	codec   *rxnsmiles.Codec
	batch   *batch.Processor
}

// NewServer creates a new MCP server instance. A nil config means
// DefaultConfig, and a nil logger discards output.
func NewServer(config *Config, logger *slog.Logger) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}

	dbFile, err := config.databaseFile()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s, err := newServer(config, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return s, nil
}

// newServer wires the server around an open storage
func newServer(config *Config, store storage.Storage, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// The cache is shared by parsing, conversion, combination and batches
	tk := chem.NewCachedToolkit(chem.NewSyntaxToolkit(), config.CacheSize)
	codec := rxnsmiles.New(tk, rxnsmiles.Options{RemoveAtomMaps: config.RemoveAtomMaps})

	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion),
		config:  config,
		logger:  logger,
		storage: store,
		toolkit: tk,
		codec:   codec,
		batch:   batch.New(codec, store, logger.With("component", "batch")),
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	s.logger.Info("serving MCP on stdio", "tools", len(toolDefinitions()), "storage", storage.BuildMode)
	return server.ServeStdio(s.mcp)
}

// Close releases the storage without serving
func (s *Server) Close() error {
	return s.storage.Close()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	handlers := map[string]server.ToolHandlerFunc{
		toolParseReaction:   s.handleParseReaction,
		toolConvertReaction: s.handleConvertReaction,
		toolCombine:         s.handleCombineReactions,
		toolBatchConvert:    s.handleBatchConvert,
		toolStoreReaction:   s.handleStoreReaction,
		toolFindReactions:   s.handleFindReactions,
		toolGetReaction:     s.handleGetReaction,
	}

	for _, tool := range toolDefinitions() {
		handler, ok := handlers[tool.Name]
		if !ok {
			return fmt.Errorf("no handler for tool %s", tool.Name)
		}
		s.mcp.AddTool(tool, handler)
	}

	return nil
}
