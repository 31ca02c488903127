// Package domain defines the core business entities for b24docs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry: metadata for one document of the local index
//   - Catalog: the ordered entry collection with O(1) slug lookup
//   - Match: a scored search hit with its snippet
//   - Document: full document content returned by a fetch
//   - Locator: a (repository, path) address in the remote source
//   - Reply: the success/failure outcome of a protocol operation
//
// It also holds the pure text helpers shared by both search backends
// (tokenisation and snippet extraction).
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
