package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates a malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden indicates the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a uniqueness violation, e.g. a duplicate transaction id.
	ErrConflict = errors.New("conflict")
)

// Error pairs one of the sentinel kinds with a caller-facing message. Handlers
// pick the HTTP status from the kind and put the message in the response body.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error  { return &Error{Kind: ErrNotFound, Message: msg} }
func Invalid(msg string) error   { return &Error{Kind: ErrInvalidArgument, Message: msg} }
func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }
func Conflict(msg string) error  { return &Error{Kind: ErrConflict, Message: msg} }
