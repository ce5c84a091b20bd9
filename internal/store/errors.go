package store

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind is the closed classification of store failures. Every failure that
// reaches the UI is translated onto this enum exactly once, at the store
// boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindCancelled
	KindConnectivity
	KindAuthorization
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindCancelled:
		return "cancelled"
	case KindConnectivity:
		return "connectivity"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Message returns the user-facing text for this failure kind. Cancellation
// has none: it is never surfaced.
func (k Kind) Message() string {
	switch k {
	case KindConnectivity:
		return "Cannot reach the task store. Check your connection and retry."
	case KindAuthorization:
		return "You do not have permission to access the task store."
	case KindNotFound:
		return "The task collection was not found on the server."
	case KindValidation:
		return "That change is not allowed."
	case KindCancelled:
		return ""
	default:
		return "Something went wrong talking to the task store."
	}
}

// Error wraps a store failure with its kind and originating operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified store error.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Classify translates any error into a Kind. Already-classified errors keep
// their kind; context cancellation is recognized anywhere in the chain;
// transport-level errors count as connectivity. Everything else is unknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindConnectivity
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return KindConnectivity
	}
	return KindUnknown
}

// IsCancelled reports whether the error is a silent cancellation.
func IsCancelled(err error) bool {
	return err != nil && Classify(err) == KindCancelled
}
