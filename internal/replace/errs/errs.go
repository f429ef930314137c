// Package errs classifies errors raised by the search/replace engine so
// callers can decide between a fatal exit, a logged-and-continued
// failure, or a user-facing notification.
package errs

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a ReplaceError by how the rest of the system should
// react to it.
type Kind int

const (
	// MissingDependency - a required external binary is absent. Fatal at
	// startup preflight; the AstGrep routes of a build without the astgrep
	// tag also return it at search/replace time.
	MissingDependency Kind = iota

	// SubprocessFailure - a search or replace subprocess exited non-zero
	// or could not be started. Logged; search returns empty, replace
	// aborts and notifies.
	SubprocessFailure

	// ParseError - a backend emitted a JSON record this adapter could not
	// parse. Logged; that record is skipped, others continue.
	ParseError

	// IoError - a file read or write failed. Replace aborts for that
	// file; others continue; surfaced as an Error notification.
	IoError

	// PreconditionFailure - a gating condition was not met (empty search
	// text, missing replace confirmation). Surfaced via notification or
	// dialog, never logged as a bug.
	PreconditionFailure

	// InvariantViolation - an internal invariant was broken; this always
	// indicates a bug. Fatal() reports it as fatal, but the thunks that
	// raise it return or notify it and do not end the process.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case MissingDependency:
		return "MissingDependency"
	case SubprocessFailure:
		return "SubprocessFailure"
	case ParseError:
		return "ParseError"
	case IoError:
		return "IoError"
	case PreconditionFailure:
		return "PreconditionFailure"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// ReplaceError is the error type returned throughout the engine.
type ReplaceError struct {
	Kind    Kind
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ReplaceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ToJSON renders the error as structured data, for log fields or
// diagnostics.
func (e *ReplaceError) ToJSON() map[string]any {
	result := map[string]any{
		"kind":  e.Kind.String(),
		"error": e.Message,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	return result
}

// Fatal reports whether this error should terminate the process
// immediately rather than be surfaced as a notification.
func (e *ReplaceError) Fatal() bool {
	return e.Kind == MissingDependency || e.Kind == InvariantViolation
}

// New creates a ReplaceError of the given kind.
func New(kind Kind, msg string) *ReplaceError {
	return &ReplaceError{Kind: kind, Message: msg}
}

// Newf creates a formatted ReplaceError of the given kind.
func Newf(kind Kind, format string, args ...any) *ReplaceError {
	return &ReplaceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails creates a ReplaceError carrying structured details.
func WithDetails(kind Kind, msg string, details map[string]any) *ReplaceError {
	return &ReplaceError{Kind: kind, Message: msg, Details: details}
}

// Wrap classifies a plain error as the given kind, preserving it
// unchanged if it is already a ReplaceError.
func Wrap(kind Kind, err error) *ReplaceError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*ReplaceError); ok {
		return re
	}
	return New(kind, err.Error())
}

// Format returns a human-readable rendering of a ReplaceError, as JSON
// when it carries structured details, or plain text otherwise.
func Format(err *ReplaceError) string {
	if err == nil {
		return ""
	}
	if len(err.Details) > 0 {
		if b, marshalErr := json.MarshalIndent(err.ToJSON(), "", "  "); marshalErr == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("Error: %s", err.Message)
}
