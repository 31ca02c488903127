package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// ResourceScheme prefixes every document resource URI.
const ResourceScheme = "bitrix24-docs://"

const (
	mimeMarkdown = "text/markdown"
	mimeText     = "text/plain"
)

// textResult is the plain text content used for failures.
func textResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeText,
			Text:     text,
		}},
	}
}

// ResourceURI returns the resource URI of a slug.
func ResourceURI(slug string) string {
	return ResourceScheme + "docs/" + slug
}

// registerResources exposes every catalog entry as a resource.
func (s *Server) registerResources(server *mcp.Server) {
	if s.ports.Catalog == nil {
		return
	}

	for _, entry := range s.ports.Catalog.Entries() {
		server.AddResource(&mcp.Resource{
			URI:         ResourceURI(entry.Slug),
			Name:        "bitrix24-doc-" + entry.Slug,
			Title:       entry.DisplayTitle(),
			Description: "Bitrix24 documentation. Source URL: " + entry.URL,
			MIMEType:    mimeMarkdown,
		}, s.resourceHandler(entry))
	}
}

// resourceHandler reads one entry. Read failures are reported as text
// content rather than as a protocol error.
func (s *Server) resourceHandler(entry domain.Entry) mcp.ResourceHandler {
	uri := ResourceURI(entry.Slug)
	return func(ctx context.Context, _ *mcp.ReadResourceRequest) (result *mcp.ReadResourceResult, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logPanic(ctx, uri, rec)
				result, err = textResult(uri, internalErrorMessage), nil
			}
		}()

		doc, readErr := s.ports.Catalog.Read(ctx, entry.Slug)
		if readErr != nil {
			logger.Warn("Failed to read resource %s: %v", uri, readErr)
			return textResult(uri, "Failed to read resource: "+readErr.Error()), nil
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      uri,
				MIMEType: mimeMarkdown,
				Text:     formatDocument(doc),
			}},
		}, nil
	}
}
