package domain

import "errors"

// ErrorKind classifies domain errors so handlers can map them to HTTP
// statuses without string matching.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDependency
	KindStore
)

// Error is the domain error type. Message is safe to return to clients;
// Cause carries the underlying error for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidationError reports bad or missing input.
func ValidationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFoundError reports an unknown identifier.
func NotFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ConflictError reports a detected invariant violation, such as a corrupted
// position sequence.
func ConflictError(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// DependencyError reports a rejected external precondition, such as a
// referenced image that does not exist in storage.
func DependencyError(msg string) error {
	return &Error{Kind: KindDependency, Message: msg}
}

// StoreError wraps a persistence failure. The cause is never exposed to
// clients.
func StoreError(msg string, cause error) error {
	return &Error{Kind: KindStore, Message: msg, Cause: cause}
}

// KindOf extracts the kind from err, unwrapping as needed. Errors outside the
// domain taxonomy report KindUnknown.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
