// Package github serves the Bitrix24 REST documentation from its GitHub
// repository.
//
// # Components
//
//   - Client: go-github wrapper with rate limiting and error mapping
//   - Connector: the driven.DocsSource used by the remote backend
//     (code search plus the contents endpoint)
//   - TreeSource: the driven.MarkdownSource used to build a local index
//     from the repository tree without a checkout
//   - ParseLocator: maps slugs, paths and raw/blob URLs onto a repository
//     address
//
// # Authentication
//
// A personal access token is optional. Without one requests are anonymous
// and GitHub allows 60 of them per hour; with one the limit is 5,000.
// Code search always requires a token on github.com.
//
// # Rate Limiting
//
//  1. Proactive throttling: a token bucket spaces requests out
//     (5 per second by default).
//  2. Reactive handling: the X-RateLimit-Remaining and X-RateLimit-Reset
//     headers are tracked. Once the quota is exhausted, requests fail
//     immediately with a RateLimitError until the reset time.
//
// # Errors
//
// Non-success responses become *APIError values that keep the raw response
// body. All of them match domain.ErrRemoteAccess; rate limit responses also
// match domain.ErrRateLimited. Content that is not base64 encoded matches
// domain.ErrDecode.
package github
