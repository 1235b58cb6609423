package service

import "github.com/pkg/errors"

type ErrorKind string

const (
	ErrorKindFetchFailed  ErrorKind = "fetch_failed"
	ErrorKindCreateFailed ErrorKind = "create_failed"
	ErrorKindUpdateFailed ErrorKind = "update_failed"
	ErrorKindDeleteFailed ErrorKind = "delete_failed"
	ErrorKindNotFound     ErrorKind = "not_found"
)

// Error is the uniform failure value emitted by the task manager. The
// message is safe to show to end users; the cause is only meant for
// diagnostics and is never exposed past the transport boundary.
type Error struct {
	kind    ErrorKind
	message string
	cause   error
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{
		kind:    kind,
		message: message,
		cause:   cause,
	}
}

func IsKind(err error, kind ErrorKind) bool {
	var serviceErr *Error
	if !errors.As(err, &serviceErr) {
		return false
	}

	return serviceErr.Kind() == kind
}

var _ error = &Error{}
