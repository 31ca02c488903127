package github

import (
	"fmt"
	"strings"
)

// DefaultRepo is the repository of the Bitrix24 REST documentation.
const DefaultRepo = "bitrix24/b24restdocs"

// Config holds the settings of the GitHub documentation source.
type Config struct {
	// Repo is the default repository in owner/name form.
	Repo string

	// Branch is the branch walked by the tree source.
	// Empty means the repository's default branch.
	Branch string
}

// ParseConfig normalises and validates a source configuration.
func ParseConfig(repo, branch string) (*Config, error) {
	repo = strings.Trim(strings.TrimSpace(repo), "/")
	if repo == "" {
		repo = DefaultRepo
	}
	if _, _, err := SplitRepo(repo); err != nil {
		return nil, err
	}
	return &Config{
		Repo:   repo,
		Branch: strings.TrimSpace(branch),
	}, nil
}

// SplitRepo splits owner/name into its parts.
func SplitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, repo)
	}
	return parts[0], parts[1], nil
}
