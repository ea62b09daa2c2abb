package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrInvalidState        = errors.New("invalid state")
	ErrForbidden           = errors.New("forbidden")
	ErrDependencyFailure   = errors.New("dependency failure")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// ObjectNotFoundError reports an identifier that did not resolve.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed parameter.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid,
		sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError reports an operation attempted from a status that does not allow it.
type InvalidStateError struct {
	Operation string
	State     string
}

func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, State: state}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s from status %s", ErrInvalidState, e.Operation, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ForbiddenError reports an actor that is not authorized for an operation.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func NewForbiddenError(operation, reason string) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Operation, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// DependencyFailureError reports a failing collaborator.
type DependencyFailureError struct {
	Dependency string
	Cause      error
}

func NewDependencyFailureError(dependency string) *DependencyFailureError {
	return &DependencyFailureError{Dependency: dependency}
}

func NewDependencyFailureErrorWithCause(dependency string, cause error) *DependencyFailureError {
	return &DependencyFailureError{Dependency: dependency, Cause: cause}
}

func (e *DependencyFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrDependencyFailure, e.Dependency, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDependencyFailure, e.Dependency)
}

// Unwrap exposes both the sentinel and the cause so callers can match either.
func (e *DependencyFailureError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrDependencyFailure, e.Cause}
	}
	return []error{ErrDependencyFailure}
}

// ConcurrencyConflictError reports a write that lost a race and may be retried.
type ConcurrencyConflictError struct {
	Resource string
	Cause    error
}

func NewConcurrencyConflictError(resource string, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Resource: resource, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConcurrencyConflict, e.Resource, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConcurrencyConflict, e.Resource)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
