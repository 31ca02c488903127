package domain

// Locator addresses a file in a remote repository.
type Locator struct {
	// Repo is the repository in owner/name form.
	Repo string

	// Path is the repository-relative file path.
	Path string
}

// String returns the locator as repo:path.
func (l Locator) String() string {
	return l.Repo + ":" + l.Path
}
