package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultPreviewLimit is the preview length, in characters, stored in the index.
const DefaultPreviewLimit = 400

var headingMarker = regexp.MustCompile(`^#+\s*`)

// Normaliser handles Markdown documents.
type Normaliser struct {
	previewLimit int
}

// New creates a new Markdown normaliser.
// A non-positive previewLimit selects DefaultPreviewLimit.
func New(previewLimit int) *Normaliser {
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	return &Normaliser{previewLimit: previewLimit}
}

// Normalise extracts the title and preview of a markdown file.
func (n *Normaliser) Normalise(_ context.Context, file *driven.MarkdownFile, fallbackTitle string) (*driven.NormaliseResult, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Title:   ExtractTitle(file.Content, fallbackTitle),
		Preview: Preview(file.Content, n.previewLimit),
	}, nil
}

// ExtractTitle returns the text of the first non-empty heading line.
// A heading line starts with '#'; the marker run and following whitespace
// are removed. Empty headings are skipped. Without a heading the fallback
// is returned.
func ExtractTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		title := strings.TrimSpace(headingMarker.ReplaceAllString(line, ""))
		if title != "" {
			return title
		}
	}
	return fallback
}

// Preview converts markdown into a single-line plain-text excerpt of at most
// limit characters. Heading and emphasis markers become spaces and
// whitespace runs collapse.
func Preview(content string, limit int) string {
	stripped := strings.NewReplacer("#", " ", "*", " ").Replace(content)
	stripped = domain.CollapseWhitespace(stripped)

	runes := []rune(stripped)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit])
	}
	return stripped
}
