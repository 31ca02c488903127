package domain

import (
	"fmt"
	"strings"
)

// Catalog is the immutable collection of index entries.
// It pairs the ordered entry list, used for iteration and ranking ties,
// with a slug map for O(1) lookup. Both are built once by NewCatalog.
type Catalog struct {
	entries []Entry
	bySlug  map[string]int
}

// NewCatalog builds a catalog from entries, preserving their order.
// Every entry must carry a non-empty slug and slugs must be unique.
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		bySlug:  make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i := range c.entries {
		slug := c.entries[i].Slug
		if strings.TrimSpace(slug) == "" {
			return nil, fmt.Errorf("%w: entry %d has no slug", ErrInvalidInput, i)
		}
		if _, exists := c.bySlug[slug]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, slug)
		}
		c.bySlug[slug] = i
	}

	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in load order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry with the given slug.
func (c *Catalog) Get(slug string) (Entry, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Lookup resolves an identifier that is either a slug or an entry URL.
// Slugs are tried first; URLs fall back to a linear scan.
func (c *Catalog) Lookup(identifier string) (Entry, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Entry{}, false
	}

	if entry, ok := c.Get(identifier); ok {
		return entry, true
	}

	for i := range c.entries {
		if c.entries[i].URL == identifier {
			return c.entries[i], true
		}
	}
	return Entry{}, false
}
