// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - MarkdownStore: reads document bodies of the local index (flat files)
//   - DocsSource: remote documentation repository (GitHub search and contents)
//   - MarkdownSource: enumerates markdown files for the index builder
//   - IndexWriter: writes the flat-file index
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
