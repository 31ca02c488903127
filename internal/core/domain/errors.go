package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a slug or URL resolves to no known document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Validation failures are rejected before any I/O.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateSlug indicates two index entries share a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrRemoteAccess indicates the remote source answered with a non-success status.
	ErrRemoteAccess = errors.New("remote access failed")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	// Rate limit errors also match ErrRemoteAccess.
	ErrRateLimited = errors.New("rate limited")

	// ErrDecode indicates remote content was missing or not base64 encoded.
	ErrDecode = errors.New("content decode failed")

	// ErrLocalIO indicates a markdown file of the local index could not be read.
	ErrLocalIO = errors.New("local file unreadable")
)
