package github

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

const (
	rawPrefix  = "https://raw.githubusercontent.com/"
	blobPrefix = "https://github.com/"
)

// ParseLocator maps a document identifier onto a repository address.
//
// Three shapes are understood:
//
//	https://raw.githubusercontent.com/{owner}/{repo}/{ref}/{path}
//	https://github.com/{owner}/{repo}/blob/{ref}/{path}
//	{path} or /{path}, addressed in defaultRepo
//
// A fragment or query on a URL is dropped. Anything else, including
// malformed URLs, is treated as a bare path. Existence is not checked.
func ParseLocator(identifier, defaultRepo string) domain.Locator {
	if rest, ok := strings.CutPrefix(identifier, rawPrefix); ok {
		parts := strings.Split(stripSuffix(rest), "/")
		if len(parts) >= 2 {
			return domain.Locator{
				Repo: parts[0] + "/" + parts[1],
				Path: joinFrom(parts, 3),
			}
		}
	}

	if rest, ok := strings.CutPrefix(identifier, blobPrefix); ok {
		parts := strings.Split(stripSuffix(rest), "/")
		if len(parts) > 4 && parts[2] == "blob" {
			return domain.Locator{
				Repo: parts[0] + "/" + parts[1],
				Path: joinFrom(parts, 4),
			}
		}
	}

	return domain.Locator{
		Repo: defaultRepo,
		Path: strings.TrimPrefix(identifier, "/"),
	}
}

// BlobURL returns the web URL of a file on a branch.
func BlobURL(repo, branch, path string) string {
	return fmt.Sprintf("https://github.com/%s/blob/%s/%s", repo, branch, path)
}

func joinFrom(parts []string, from int) string {
	if from >= len(parts) {
		return ""
	}
	return strings.Join(parts[from:], "/")
}

// stripSuffix cuts a URL remainder at the first '#' or '?'.
func stripSuffix(rest string) string {
	if i := strings.IndexAny(rest, "#?"); i >= 0 {
		return rest[:i]
	}
	return rest
}
