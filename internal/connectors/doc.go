// Package connectors holds the sources documentation is read from: the
// GitHub API (search, contents and tree walks) and a local checkout of the
// documentation repository.
package connectors
