package domain

// Entry is the metadata record of one document in the local index.
// It describes the document but does not hold its full content.
type Entry struct {
	// Slug is the stable identifier, unique within the index.
	Slug string `json:"slug"`

	// URL is the canonical source URL.
	URL string `json:"url"`

	// Title is the optional display name.
	Title string `json:"title,omitempty"`

	// TextPreview is a short plain-text excerpt used for scoring and snippets.
	TextPreview string `json:"text_preview,omitempty"`

	// MarkdownPath is the path of the full content, relative to the data directory.
	MarkdownPath string `json:"markdown_path"`

	// RetrievedAt is an optional ISO 8601 timestamp.
	RetrievedAt string `json:"retrieved_at,omitempty"`
}

// DisplayTitle returns the title, falling back to the slug.
func (e Entry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Slug
}
