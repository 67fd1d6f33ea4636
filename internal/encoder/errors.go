package encoder

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every RangeError.
	ErrOutOfRange = errors.New("version component out of range")
	// ErrInvalidHash is returned when a VCS hash is not 8 hex digits.
	ErrInvalidHash = errors.New("invalid vcs hash")
	// ErrInvalidVersion is returned when a dotted version cannot be parsed.
	ErrInvalidVersion = errors.New("invalid dotted version")
)

// RangeError reports a version component that does not fit into one byte.
type RangeError struct {
	// Component is the component name: major, minor, patch or build.
	Component string
	// Value is the rejected value.
	Value int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s version component %d is out of range [%d, %d]",
		e.Component, e.Value, MinComponent, MaxComponent)
}

// Unwrap lets errors.Is(err, ErrOutOfRange) match.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
