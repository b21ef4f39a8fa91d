package model

import (
	"github.com/pkg/errors"
)

// Error kinds raised by the simulation engine. All of them surface
// synchronously at construction or aggregation time; nothing is deferred
// into later array use.
var (
	// ErrInvalidParameter marks malformed configuration: non-positive
	// distances, exponents or shape dimensions, bad fading specs.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch marks incompatible array shapes when combining links.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// NewInvalidParameter returns an ErrInvalidParameter with a formatted cause.
func NewInvalidParameter(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

// NewShapeMismatch returns an ErrShapeMismatch with a formatted cause.
func NewShapeMismatch(format string, args ...interface{}) error {
	return errors.Wrapf(ErrShapeMismatch, format, args...)
}
