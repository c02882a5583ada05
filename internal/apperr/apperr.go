// Package apperr defines the error taxonomy shared by services and handlers.
// Every service failure is reported as one of five kinds so callers can
// distinguish "insufficient permission" from "not found" from "validation
// failed" and decide whether a retry is safe.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Unknown is the zero kind for wrapped errors that carry no kind.
	Unknown Kind = iota
	// Unauthorized: role floor not met, ownership violated, self-demotion.
	// Never retried.
	Unauthorized
	// Unauthenticated: missing or unverifiable credentials. Distinct from
	// Unauthorized: the caller's identity is unknown, not insufficient.
	Unauthenticated
	// NotFound: the referenced item or actor does not exist.
	NotFound
	// InvalidArgument: request rejected before any state change.
	InvalidArgument
	// Conflict: concurrent edit or duplicate mutation.
	Conflict
	// Unavailable: transient storage or network failure. Idempotent reads
	// may be retried once; mutations must be re-issued deliberately.
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case Conflict:
		return "conflict"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error carries the failing operation and underlying cause alongside the
// kind, so logs and user-facing messages stay specific.
type Error struct {
	Kind Kind
	Op   string // e.g. "approval.Reject"
	Msg  string // user-presentable message
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error. An optional final argument carries the cause.
func E(kind Kind, op, msg string, cause ...error) *Error {
	e := &Error{Kind: kind, Op: op, Msg: msg}
	if len(cause) > 0 {
		e.Err = cause[0]
	}
	return e
}

// KindOf extracts the kind from err, walking the wrap chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-presentable message, or a generic fallback.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "Something went wrong"
}
