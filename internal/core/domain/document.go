package domain

// Document is the full content of one documentation page.
// It is constructed fresh on every fetch and never cached.
type Document struct {
	// Slug is the identifier the document was fetched by.
	// For the remote source this is the repository path.
	Slug string

	// Title is the display title.
	Title string

	// Path is the repository-relative or data-relative file path.
	Path string

	// URL is the canonical web link to the document.
	URL string

	// Content is the full markdown text.
	Content string

	// RetrievedAt is an ISO 8601 timestamp, empty when unknown.
	RetrievedAt string
}

// DisplayTitle returns the title, falling back to the slug.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Slug
}
