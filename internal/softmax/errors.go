package softmax

import (
	"errors"
	"fmt"
)

// Kind classifies reducer failures.
type Kind int

const (
	// KindPrecondition marks invalid input. The caller must fix the input
	// before retrying; the same call will fail identically otherwise.
	KindPrecondition Kind = iota
	// KindNumerical marks a value-domain failure, such as a fully masked
	// row or an overflowed exponential sum.
	KindNumerical
)

// String returns the failure class as a string.
func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "Precondition"
	case KindNumerical:
		return "Numerical"
	default:
		return "Unknown"
	}
}

// Error is a structured reducer error carrying the failing operation.
type Error struct {
	Kind    Kind
	Op      string // Operation that rejected the input.
	Message string // Human-readable message.
	Err     error  // Underlying error if any.
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("softmax %s error in %s: %s (caused by: %v)",
			e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("softmax %s error in %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap allows error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

func newPreconditionError(op, message string) error {
	return &Error{Kind: KindPrecondition, Op: op, Message: message}
}

func newNumericalError(op, message string) error {
	return &Error{Kind: KindNumerical, Op: op, Message: message}
}

// IsPrecondition reports whether err is a precondition violation.
func IsPrecondition(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindPrecondition
	}
	return false
}

// IsNumerical reports whether err is a numerical-domain failure.
func IsNumerical(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindNumerical
	}
	return false
}
