package mcp

import (
	"github.com/custodia-labs/b24docs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Docs answers search and fetch for the configured backend.
	Docs driving.DocsService

	// Catalog lists index entries as resources. Only the index backend
	// provides it; nil disables resources.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Docs == nil {
		return ErrMissingDocsService
	}
	return nil
}
