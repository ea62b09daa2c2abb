// Package errs provides standardized error types for the quote service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types grouped by the kind of failure:
//   - ObjectNotFoundError: an identifier did not resolve (NotFound)
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError:
//     malformed input (InvalidArgument)
//   - InvalidStateError: a transition attempted from an incompatible status (InvalidState)
//   - ForbiddenError: the actor is not the party allowed to act (Forbidden)
//   - DependencyFailureError: a collaborator (renderer, object store, catalog,
//     database) failed (DependencyFailure)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error chain to a stable Kind so transports can translate
// failures without inspecting concrete types.
package errs
