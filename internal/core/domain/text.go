package domain

import (
	"strings"
	"unicode"
)

const (
	// SnippetWidth is the default window width of Snippet, in characters.
	SnippetWidth = 200

	// ExcerptRadius is the number of characters kept on each side of a
	// preview match by Excerpt.
	ExcerptRadius = 60

	// ExcerptFallback is the prefix length Excerpt returns when no token matches.
	ExcerptFallback = 160
)

// Tokenize splits a query on whitespace into lowercase tokens.
// Empty tokens are discarded; order and duplicates are kept.
func Tokenize(query string) []string {
	return strings.Fields(lower(query))
}

// CollapseWhitespace replaces every whitespace run with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Snippet returns an excerpt of text around the first query token it contains.
//
// Whitespace in text is collapsed first. Tokens are tried in query order and
// the first one found anywhere in the text wins; the excerpt is a window of
// width characters centred on it and clamped to the text bounds. When no
// token occurs, the first width characters are returned.
func Snippet(text, query string, width int) string {
	if width <= 0 {
		width = SnippetWidth
	}

	normalized := []rune(CollapseWhitespace(text))
	lowered := []rune(lower(string(normalized)))

	idx := -1
	for _, token := range Tokenize(query) {
		if i := indexRunes(lowered, []rune(token)); i >= 0 {
			idx = i
			break
		}
	}

	if idx < 0 {
		return string(normalized[:min(width, len(normalized))])
	}

	start := max(0, idx-width/2)
	end := min(len(normalized), start+width)
	return strings.TrimSpace(string(normalized[start:end]))
}

// Excerpt returns a short excerpt of an index preview for the given tokens.
//
// The first token found in the preview selects a window of ExcerptRadius
// characters on each side of the match. Without a match the first
// ExcerptFallback characters are used. Whitespace in the result is collapsed.
func Excerpt(preview string, tokens []string) string {
	if preview == "" {
		return ""
	}

	source := []rune(preview)
	lowered := []rune(lower(preview))

	for _, token := range tokens {
		t := []rune(token)
		if idx := indexRunes(lowered, t); idx >= 0 {
			start := max(0, idx-ExcerptRadius)
			end := min(len(source), idx+len(t)+ExcerptRadius)
			return CollapseWhitespace(string(source[start:end]))
		}
	}

	return CollapseWhitespace(string(source[:min(len(source), ExcerptFallback)]))
}

// ContainsWord reports whether token occurs in text as a whole word:
// the characters on either side of the occurrence, if any, are neither
// letters nor digits. Both arguments are expected to be lowercased.
func ContainsWord(text, token string) bool {
	if token == "" {
		return false
	}
	haystack := []rune(text)
	needle := []rune(token)

	for offset := 0; offset+len(needle) <= len(haystack); {
		i := indexRunes(haystack[offset:], needle)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(needle)
		if (start == 0 || !isWordRune(haystack[start-1])) &&
			(end == len(haystack) || !isWordRune(haystack[end])) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lower lowercases s rune by rune so that rune offsets are preserved.
func lower(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// indexRunes returns the rune offset of needle in haystack, or -1.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
