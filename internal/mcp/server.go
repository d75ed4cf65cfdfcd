// ABOUTME: MCP server setup for the CheckingIn wellness tracker.
// ABOUTME: Exposes the tracker to AI assistants over stdio.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/checkingin/internal/wellness"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *wellness.Tracker
}

// NewServer creates a new MCP server backed by the given tracker.
func NewServer(tracker *wellness.Tracker) (*Server, error) {
	if tracker == nil {
		return nil, errors.New("tracker is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "checkingin",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   tracker,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
