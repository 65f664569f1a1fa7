package service

import "fmt"

// Error kinds surfaced to the transport layer. All service failures are
// terminal; none represent a transient condition worth retrying.
const (
	KindValidation   = "VALIDATION_ERROR"
	KindConflict     = "CONFLICT"
	KindUnauthorized = "UNAUTHORIZED"
	KindNotFound     = "NOT_FOUND"
)

// Error is a machine-readable service failure with a human-readable
// message.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(format string, v ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, v...)}
}

func conflictError(format string, v ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, v...)}
}

func unauthorizedError(format string, v ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, v...)}
}

func notFoundError(format string, v ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, v...)}
}
