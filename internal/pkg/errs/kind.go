package errs

import "errors"

// Kind is the stable, transport-independent classification of an error.
type Kind string

const (
	KindNotFound          Kind = "NotFound"
	KindInvalidArgument   Kind = "InvalidArgument"
	KindInvalidState      Kind = "InvalidState"
	KindForbidden         Kind = "Forbidden"
	KindDependencyFailure Kind = "DependencyFailure"
	KindInternal          Kind = "Internal"
)

// KindOf classifies err. Client-caused kinds win over DependencyFailure when a
// chain carries both, since they are the actionable part for the caller.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidArgument
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrDependencyFailure), errors.Is(err, ErrConcurrencyConflict):
		return KindDependencyFailure
	default:
		return KindInternal
	}
}

// IsRetryable reports whether the whole unit of work may be replayed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
