package driven

import "context"

// Normaliser derives index metadata from a markdown source file.
type Normaliser interface {
	// Normalise extracts the title and plain-text preview of file.
	// fallbackTitle is used when the file has no usable heading.
	Normalise(ctx context.Context, file *MarkdownFile, fallbackTitle string) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is the first heading or the fallback.
	Title string

	// Preview is the short plain-text excerpt stored in the index.
	Preview string
}
