// Package mcp exposes the documentation services over the Model Context
// Protocol, on stdio or streamable HTTP.
package mcp

import "errors"

// ErrMissingDocsService is returned when the docs service is not provided.
var ErrMissingDocsService = errors.New("mcp: docs service is required")
