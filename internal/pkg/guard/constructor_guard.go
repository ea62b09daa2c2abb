// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero-value instances can be told apart from
// instances built by their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct went through its constructor.
//
// Example usage:
//
//	type ValidateQuoteCommand struct {
//	    requestID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c ValidateQuoteCommand) Validate() error {
//	    return c.guard.Validate(ErrValidateQuoteCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}

	if !g.isConstructed {
		return validationError
	}

	return nil
}
