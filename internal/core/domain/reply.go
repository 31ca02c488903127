package domain

// Reply is the outcome of a protocol operation: either a success payload
// or an error payload. Operations return a Reply instead of failing so that
// callers branch on IsError rather than on a propagated error.
type Reply struct {
	text   string
	failed bool
}

// Success returns a successful reply carrying text.
func Success(text string) Reply {
	return Reply{text: text}
}

// Failure returns an error reply carrying a human-readable message.
func Failure(text string) Reply {
	return Reply{text: text, failed: true}
}

// Text returns the reply payload.
func (r Reply) Text() string {
	return r.text
}

// IsError reports whether the reply is the error variant.
func (r Reply) IsError() bool {
	return r.failed
}
