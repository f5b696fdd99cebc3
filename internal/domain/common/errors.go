// internal/domain/common/errors.go
package common

import "errors"

// Shared error kinds. Domain packages wrap these with their own
// sentinels so that callers can match either the specific error
// (product.ErrNotFound) or the kind (common.ErrNotFound).
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrTimeout      = errors.New("timeout")
	ErrUpstream     = errors.New("upstream failure")
)

// Kind builds a package-specific sentinel on top of a shared kind.
// errors.Is matches the returned error itself and the kind it wraps.
func Kind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
