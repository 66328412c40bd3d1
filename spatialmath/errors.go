package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUndefinedOperand is returned by every operation other than construction, definedness and
	// equality checks when it is invoked on an undefined value.
	ErrUndefinedOperand = errors.New("operation invalid on undefined value")

	// ErrDomainViolation is returned when an input breaks an invariant that cannot be repaired, such as
	// a non-orthonormal matrix, an out of range index or malformed text.
	ErrDomainViolation = errors.New("domain violation")
)

// NewUndefinedOperandError is used when an operation is invoked on an undefined value of the named kind.
func NewUndefinedOperandError(kind string) error {
	return errors.Wrap(ErrUndefinedOperand, kind)
}

// NewDomainError is used when an input violates a representation invariant.
func NewDomainError(format string, args ...interface{}) error {
	return errors.Wrap(ErrDomainViolation, fmt.Sprintf(format, args...))
}

// NewIndexError is used when a row or column accessor is given an index outside [0, 3).
func NewIndexError(what string, index int) error {
	return errors.Wrapf(ErrDomainViolation, "%s index %d out of range [0, 3)", what, index)
}

// NewParseError is used when text cannot be parsed into the named representation.
func NewParseError(kind, text string, cause error) error {
	if cause == nil {
		return errors.Wrapf(ErrDomainViolation, "cannot parse %s from %q", kind, text)
	}
	return errors.Wrapf(ErrDomainViolation, "cannot parse %s from %q: %v", kind, text, cause)
}
