package domain

// AuthMethod describes how requests to the remote source authenticate.
type AuthMethod string

const (
	// AuthMethodNone sends anonymous requests.
	AuthMethodNone AuthMethod = "none"

	// AuthMethodToken sends a bearer token with every request.
	AuthMethodToken AuthMethod = "token"
)
