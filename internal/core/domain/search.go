package domain

const (
	// DefaultSearchLimit is the number of results returned when no limit is given.
	DefaultSearchLimit = 5

	// MaxSearchLimit caps the number of results of any search.
	MaxSearchLimit = 20

	// MinQueryLength is the minimum number of characters of a search query.
	MinQueryLength = 2
)

// Match is a single search hit. It exists only for the duration of one search.
type Match struct {
	// Slug identifies the document; it can be passed back to fetch.
	Slug string

	// Title is the document title, possibly empty.
	Title string

	// URL is the canonical source URL.
	URL string

	// Snippet is a short excerpt near the first matching token.
	Snippet string

	// Score is the relevance score. Local scores are integral;
	// remote scores are reported verbatim by the remote service.
	Score float64
}

// CodeHit is one result of a remote code search.
type CodeHit struct {
	Path    string
	HTMLURL string
	Score   float64
}

// ClampLimit bounds a requested result count to [1, MaxSearchLimit].
// Non-positive values become DefaultSearchLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}
