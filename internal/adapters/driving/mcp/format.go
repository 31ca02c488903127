package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// formatMatches renders search results as numbered blocks separated by a
// blank line.
func formatMatches(query string, matches []domain.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No results for %q. Try rephrasing the query.", query)
	}

	blocks := make([]string, len(matches))
	for i, m := range matches {
		title := m.Title
		if title == "" {
			title = "Untitled"
		}
		blocks[i] = fmt.Sprintf("%d. %s\nURL: %s\nSlug: %s\nSnippet: %s\nScore: %s",
			i+1, title, m.URL, m.Slug, m.Snippet, formatScore(m.Score))
	}
	return strings.Join(blocks, "\n\n")
}

// formatScore prints integral scores without a fractional part.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// formatDocument renders a document with its header.
func formatDocument(doc *domain.Document) string {
	retrieved := doc.RetrievedAt
	if retrieved == "" {
		retrieved = "unknown"
	}
	return fmt.Sprintf("# %s\nSource: %s\nRetrieved: %s\n\n%s",
		doc.DisplayTitle(), doc.URL, retrieved, doc.Content)
}
