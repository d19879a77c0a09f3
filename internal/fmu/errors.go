package fmu

import (
	"fmt"
)

// DescriptionError is a structured error for defects in a model description.
// It carries the offending element and an actionable hint alongside the
// sentinel it wraps, so callers can both classify with errors.Is and print
// something a human can act on.
type DescriptionError struct {
	Source  string // archive path or member name, may be empty
	Element string // XML element or attribute involved, may be empty
	Message string // primary error message
	Hint    string // actionable suggestion, may be empty

	sentinel error
}

// Error implements the error interface.
func (e *DescriptionError) Error() string {
	msg := e.Message
	if e.Element != "" {
		msg = fmt.Sprintf("%s [element: %s]", msg, e.Element)
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap exposes the wrapped sentinel for errors.Is classification.
func (e *DescriptionError) Unwrap() error {
	return e.sentinel
}

// newDescriptionError builds a DescriptionError wrapping the given sentinel.
func newDescriptionError(sentinel error, source, element, message, hint string) *DescriptionError {
	return &DescriptionError{
		Source:   source,
		Element:  element,
		Message:  message,
		Hint:     hint,
		sentinel: sentinel,
	}
}
