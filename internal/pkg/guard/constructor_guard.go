// Package guard provides ConstructorGuard, a marker that lets value objects,
// commands and queries detect zero-value instances that bypassed their
// constructors and therefore their validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose invariants are established by a
// constructor. The zero value is "not constructed".
//
// Example:
//
//	var ErrVoucherMetaIsNotConstructed = errors.New("VoucherMeta must be created via NewVoucherMeta")
//
//	type VoucherMeta struct {
//	    method string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (m VoucherMeta) Validate() error {
//	    return m.guard.Validate(ErrVoucherMetaIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
