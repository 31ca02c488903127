package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/normalisers/markdown"
)

// FetchFile downloads a file through the contents endpoint and decodes it
// into a document. The title is the first markdown heading, or the path.
func FetchFile(ctx context.Context, client *Client, loc domain.Locator, now time.Time) (*domain.Document, error) {
	owner, name, err := SplitRepo(loc.Repo)
	if err != nil {
		return nil, err
	}

	content, err := client.GetContents(ctx, owner, name, loc.Path)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDecode, loc)
	}
	if content.Content == nil || *content.Content == "" || content.GetEncoding() != "base64" {
		return nil, fmt.Errorf("%w: could not get the content of %s", domain.ErrDecode, loc.Path)
	}

	decoded, err := decodeBase64(*content.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDecode, loc.Path, err)
	}
	text := string(decoded)

	path := content.GetPath()
	if path == "" {
		path = loc.Path
	}

	return &domain.Document{
		Slug:        loc.Path,
		Title:       markdown.ExtractTitle(text, loc.Path),
		Path:        path,
		URL:         content.GetHTMLURL(),
		Content:     text,
		RetrievedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// fetchBlobContent fetches the content of a blob and decodes it.
func fetchBlobContent(ctx context.Context, client *Client, owner, repo, sha string) ([]byte, error) {
	blob, err := client.GetBlob(ctx, owner, repo, sha)
	if err != nil {
		return nil, err
	}

	if blob.GetEncoding() == "base64" {
		decoded, err := decodeBase64(blob.GetContent())
		if err != nil {
			return nil, fmt.Errorf("%w: blob %s: %w", domain.ErrDecode, sha, err)
		}
		return decoded, nil
	}

	return []byte(blob.GetContent()), nil
}

// decodeBase64 decodes GitHub's line-wrapped base64.
func decodeBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "\n", "")
	return base64.StdEncoding.DecodeString(s)
}
