package services

import "errors"

type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindConflict            ErrorKind = "conflict"
	KindInvalidState        ErrorKind = "invalid_state"
	KindGenerationExhausted ErrorKind = "generation_exhausted"
	KindStorageFailure      ErrorKind = "storage_failure"
)

// Error carries a stable kind alongside the human message so handlers can map
// it to an HTTP status without string matching.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func GenerationExhausted(message string) *Error {
	return &Error{Kind: KindGenerationExhausted, Message: message}
}

func StorageFailure(message string, err error) *Error {
	return &Error{Kind: KindStorageFailure, Message: message, Err: err}
}

// KindOf extracts the stable kind, defaulting to a storage failure for
// anything that escaped the taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}
