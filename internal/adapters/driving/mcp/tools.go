package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/logger"
	"github.com/custodia-labs/b24docs/internal/metrics"
)

// Tool names.
const (
	ToolSearch = "bitrix_docs_search"
	ToolFetch  = "bitrix_docs_fetch"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"search query, at least 2 characters"`
	Limit *int   `json:"limit,omitempty" jsonschema:"maximum number of results, 1 to 20 (default 5)"`
}

// FetchInput is the input schema for the fetch tool.
type FetchInput struct {
	Slug string `json:"slug,omitempty" jsonschema:"document slug from the search results"`
	URL  string `json:"url,omitempty" jsonschema:"full documentation URL or repository path"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools(server *mcp.Server) {
	searchDesc := "Searches the local index of the Bitrix24 documentation and returns the top results."
	fetchDesc := "Returns the Markdown of a Bitrix24 document by slug or URL. Requires a built index."
	if s.backend() == "github" {
		searchDesc = "Searches the Bitrix24 documentation repository on GitHub and returns the top results."
		fetchDesc = "Returns the Markdown of a Bitrix24 document by repository path or GitHub URL."
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearch,
		Title:       "Search the Bitrix24 documentation",
		Description: searchDesc,
	}, s.handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolFetch,
		Title:       "Fetch a full Bitrix24 document",
		Description: fetchDesc,
	}, s.handleFetch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	reply := s.guard(ctx, ToolSearch, func() domain.Reply { return s.search(ctx, input) })
	s.observe(ctx, ToolSearch, start, reply)
	return toResult(reply), nil, nil
}

// handleFetch handles the fetch tool invocation.
func (s *Server) handleFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	reply := s.guard(ctx, ToolFetch, func() domain.Reply { return s.fetch(ctx, input) })
	s.observe(ctx, ToolFetch, start, reply)
	return toResult(reply), nil, nil
}

// guard runs fn and turns a panic into an internal error reply. The
// protocol runs handlers on their own goroutines, out of reach of the
// HTTP recoverer.
func (s *Server) guard(ctx context.Context, name string, fn func() domain.Reply) (reply domain.Reply) {
	defer func() {
		if rec := recover(); rec != nil {
			logPanic(ctx, name, rec)
			reply = domain.Failure(internalErrorMessage)
		}
	}()
	return fn()
}

func logPanic(ctx context.Context, name string, rec any) {
	logger.FromContext(ctx).Error("panic in MCP handler",
		zap.String("handler", name),
		zap.Any("panic", rec),
		zap.Stack("stack"),
	)
}

func (s *Server) search(ctx context.Context, input SearchInput) domain.Reply {
	if utf8.RuneCountInString(input.Query) < domain.MinQueryLength {
		return domain.Failure(fmt.Sprintf("The query must contain at least %d characters.", domain.MinQueryLength))
	}

	limit := domain.DefaultSearchLimit
	if input.Limit != nil {
		limit = *input.Limit
		if limit < 1 || limit > domain.MaxSearchLimit {
			return domain.Failure(fmt.Sprintf("The limit must be between 1 and %d, got %d.", domain.MaxSearchLimit, limit))
		}
	}

	matches, err := s.ports.Docs.Search(ctx, input.Query, limit)
	if err != nil {
		return domain.Failure(err.Error())
	}
	return domain.Success(formatMatches(input.Query, matches))
}

func (s *Server) fetch(ctx context.Context, input FetchInput) domain.Reply {
	identifier := input.Slug
	if identifier == "" {
		identifier = input.URL
	}
	if strings.TrimSpace(identifier) == "" {
		return domain.Failure("Provide either slug or url to fetch a document.")
	}

	doc, err := s.ports.Docs.Fetch(ctx, identifier)
	if err != nil {
		return fetchFailure(identifier, err)
	}
	return domain.Success(formatDocument(doc))
}

func fetchFailure(identifier string, err error) domain.Reply {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Failure(fmt.Sprintf(
			"Document %q was not found in the index. Build the index (b24docs index build) before starting the server.",
			identifier))
	case errors.Is(err, domain.ErrLocalIO):
		return domain.Failure(fmt.Sprintf("Could not read the file for %q: %v", identifier, err))
	default:
		return domain.Failure(err.Error())
	}
}

func (s *Server) observe(ctx context.Context, tool string, start time.Time, reply domain.Reply) {
	if s.opts.Metrics {
		metrics.ObserveTool(tool, start, reply.IsError())
	}
	logger.FromContext(ctx).Debug("tool call",
		zap.String("tool", tool),
		zap.Bool("error", reply.IsError()),
		zap.Duration("duration", time.Since(start)),
	)
}

// toResult maps a reply onto a tool result with a single text content.
func toResult(reply domain.Reply) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: reply.Text()}},
		IsError: reply.IsError(),
	}
}
