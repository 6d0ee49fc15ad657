// Package mcp exposes the growth journal to AI agents over the Model
// Context Protocol in stdio mode.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kyohei682474/1day1growth/internal/store"
)

// Server wraps the MCP server with the entry store.
type Server struct {
	mcp      *gomcp.Server
	db       *store.DB
	pageSize int
}

// NewServer creates an MCP server exposing the journal tools.
func NewServer(db *store.DB, pageSize int) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("entry store is required")
	}
	if pageSize < 1 {
		pageSize = store.DefaultPageSize
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "growth",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		db:       db,
		pageSize: pageSize,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
