package apperrors

import "errors"

// Sentinel errors for the caller-facing taxonomy. Services wrap these with
// fmt.Errorf("%w: ...") and handlers map them to HTTP statuses.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("operation is forbidden for user")
	ErrUnauthorized = errors.New("user is not authorized")
)
