package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/b24docs/internal/logger"
)

// ServerName is the implementation name announced to clients.
const ServerName = "bitrix24-docs"

// Options tunes the MCP server.
type Options struct {
	// Version is announced to clients. Empty means "dev".
	Version string

	// Backend names the docs backend ("index" or "github") for tool
	// descriptions.
	Backend string

	// Metrics enables Prometheus tool metrics.
	Metrics bool
}

// Server is the MCP server for the Bitrix24 documentation.
type Server struct {
	ports *Ports
	opts  Options
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{ports: ports, opts: opts}, nil
}

// MCPServer builds a protocol server with every tool and resource
// registered.
func (s *Server) MCPServer() *mcp.Server {
	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: s.opts.Version,
	}
	server := mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: s.instructions(),
	})

	s.registerTools(server)
	s.registerResources(server)
	return server
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("Bitrix24 docs MCP server (stdio) started, backend %s, %d resources",
		s.backend(), s.resourceCount())
	return s.MCPServer().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) instructions() string {
	text := "Use the bitrix_docs_search and bitrix_docs_fetch tools to work with the Bitrix24 REST documentation."
	if s.ports.Catalog != nil {
		text += " Documents are also available as resources with URIs " + ResourceScheme + "docs/<slug>."
	}
	return text
}

func (s *Server) backend() string {
	if s.opts.Backend == "" {
		return "index"
	}
	return s.opts.Backend
}

func (s *Server) resourceCount() int {
	if s.ports.Catalog == nil {
		return 0
	}
	return len(s.ports.Catalog.Entries())
}
