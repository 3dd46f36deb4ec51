// Package apperr defines the error taxonomy shared by services and the HTTP boundary.
package apperr

import (
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrUnauthenticated marks a missing, invalid or revoked token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an absent entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a state clash such as a duplicate team or a taken jersey.
	ErrConflict = errors.New("conflict")
	// ErrInternal marks an unexpected store or runtime failure.
	ErrInternal = errors.New("internal error")
)

func Validation(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

func Unauthenticated(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnauthenticated)
}

func Forbidden(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrForbidden)
}

func NotFound(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

func Conflict(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrConflict)
}

// Internal wraps an unexpected failure with the operation that produced it.
func Internal(err error, op string) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return errors.Mark(errors.Wrap(err, op), ErrInternal)
}

// Classified reports whether err already carries one of the taxonomy markers.
func Classified(err error) bool {
	return errors.IsAny(err, ErrValidation, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrInternal)
}

// FromStore translates gorm sentinel errors into the taxonomy: a missing record
// becomes NotFound with notFoundMsg, a unique violation becomes a Conflict, and
// anything else is an internal failure of op.
func FromStore(err error, op, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("%s", notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("%s: already exists", op)
	default:
		return Internal(err, op)
	}
}

// Is reports whether err carries the given taxonomy marker.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}
