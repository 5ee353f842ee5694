// Package guard implements the constructor guard pattern: a zero-value
// detector embedded into commands and value objects so that instances can
// only be used when created through their designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// error was supplied for a zero-value object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero
// values. Embed it unexported and set it with NewConstructorGuard inside
// the constructor; Validate then fails for any struct literal that bypassed
// the constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
