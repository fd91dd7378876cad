// Package sqlerr holds the error taxonomy shared by the cursor, parameter and
// large object packages. Match with errors.Is, every error returned by those
// packages wraps exactly one of these sentinels.
package sqlerr

import "github.com/pkg/errors"

var (
	ErrInvalidWindow   = errors.New("invalid row window")
	ErrOutOfRange      = errors.New("index out of range")
	ErrColumnNotFound  = errors.New("column not found")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrUnsupported     = errors.New("operation not supported")
	ErrUnboundNullType = errors.New("null parameter has no recorded sql type")

	// ErrReadOnly is an ErrUnsupported: errors.Is matches both.
	ErrReadOnly = errors.Wrap(ErrUnsupported, "cached object is read-only")
)

// OutOfRange reports index outside [low, high].
func OutOfRange(what string, index, low, high int) error {
	return errors.Wrapf(ErrOutOfRange, "%s %d not in [%d, %d]", what, index, low, high)
}

// TypeMismatch names both the requested and the stored type.
func TypeMismatch(requested, stored string) error {
	return errors.Wrapf(ErrTypeMismatch, "cannot read %s as %s", stored, requested)
}
