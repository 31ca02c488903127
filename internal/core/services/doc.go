// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// IndexService answers from the local flat-file index, RemoteService from
// the remote repository, and IndexBuilder produces the local index.
package services
