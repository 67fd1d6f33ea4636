package template

import (
	"errors"
	"strings"
)

var (
	// ErrUnboundPlaceholder is matched by every UnboundPlaceholderError.
	ErrUnboundPlaceholder = errors.New("unbound placeholder")
	// ErrInvalidDelimiters is returned when a delimiter is empty.
	ErrInvalidDelimiters = errors.New("template delimiters must not be empty")
)

// UnboundPlaceholderError lists template tokens that have no binding.
type UnboundPlaceholderError struct {
	// Names are the unbound token names, sorted.
	Names []string
}

// Error implements the error interface.
func (e *UnboundPlaceholderError) Error() string {
	return "template references unbound placeholders: " + strings.Join(e.Names, ", ")
}

// Unwrap lets errors.Is(err, ErrUnboundPlaceholder) match.
func (e *UnboundPlaceholderError) Unwrap() error {
	return ErrUnboundPlaceholder
}

// UnusedBindingWarning lists bindings that no template token refers to.
// It is advisory: a render that produces it still succeeds.
type UnusedBindingWarning struct {
	// Names are the unused binding names, sorted.
	Names []string
}

// Error implements the error interface so the warning can be logged like one.
func (w *UnusedBindingWarning) Error() string {
	return "bindings not referenced by the template: " + strings.Join(w.Names, ", ")
}
