package apperr

import "fmt"

// Kind classifies an error into one of the closed set of outcomes the HTTP
// layer knows how to map. Handlers match on Kind instead of inspecting
// error strings.
type Kind int

const (
	// KindInvalidInput covers missing/blank parameters and malformed or
	// out-of-range numeric input.
	KindInvalidInput Kind = iota
	// KindNotFound covers well-formed queries that matched no data.
	KindNotFound
	// KindRepository covers failures reaching or reading the record store.
	KindRepository
	// KindInternal is the catch-all for anything not classified above.
	KindInternal
)

// Error is the single error type crossing the service/handler boundary.
// Message is safe to return to clients; Err holds the wrapped cause and is
// only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput builds a client-input error whose message is returned verbatim.
func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// NotFound builds a no-matching-data error with a caller-facing message.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Repository wraps a store failure. The cause is kept for logging; clients
// only ever see the generic message.
func Repository(err error) *Error {
	return &Error{Kind: KindRepository, Message: "failed to query pharmacy records", Err: err}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}
