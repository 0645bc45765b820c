package minioc

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidRegistration indicates a registration that can never be resolved,
	// such as an interface registered without an implementation
	CodeInvalidRegistration = "INVALID_REGISTRATION"

	// CodeConflict indicates a registration clashes with an existing binding
	CodeConflict = "CONFLICT"

	// CodeNoPublicConstructor indicates an implementation has no usable constructor
	CodeNoPublicConstructor = "NO_PUBLIC_CONSTRUCTOR"

	// CodeAmbiguousConstructor indicates several constructors compete for selection
	CodeAmbiguousConstructor = "AMBIGUOUS_CONSTRUCTOR"

	// CodeInvalidConstructor indicates a declared constructor has an unusable signature
	CodeInvalidConstructor = "INVALID_CONSTRUCTOR"

	// CodeServiceNotFound indicates a service was not found in the container
	CodeServiceNotFound = "SERVICE_NOT_FOUND"

	// CodeUnsupportedOperation indicates an operation the container does not implement
	CodeUnsupportedOperation = "UNSUPPORTED_OPERATION"

	// CodeCircularDependency indicates a service depends on itself during resolution
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeTypeMismatch indicates a type mismatch during service resolution
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeServiceError indicates a constructor or factory returned an error
	CodeServiceError = "SERVICE_ERROR"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidRegistrationSentinel is a sentinel error for invalid registrations (for error checking).
var ErrInvalidRegistrationSentinel = errs.NewError(CodeInvalidRegistration, "invalid registration", nil)

// ErrConflictSentinel is a sentinel error for registration conflicts (for error checking).
var ErrConflictSentinel = errs.NewError(CodeConflict, "registration conflict", nil)

// ErrNoPublicConstructorSentinel is a sentinel error for missing public constructors (for error checking).
var ErrNoPublicConstructorSentinel = errs.NewError(CodeNoPublicConstructor, "no public constructor", nil)

// ErrAmbiguousConstructorSentinel is a sentinel error for ambiguous constructors (for error checking).
var ErrAmbiguousConstructorSentinel = errs.NewError(CodeAmbiguousConstructor, "ambiguous constructor", nil)

// ErrInvalidConstructorSentinel is a sentinel error for malformed constructors (for error checking).
var ErrInvalidConstructorSentinel = errs.NewError(CodeInvalidConstructor, "invalid constructor", nil)

// ErrServiceNotFoundSentinel is a sentinel error for service not found (for error checking).
var ErrServiceNotFoundSentinel = errs.NewError(CodeServiceNotFound, "service not found", nil)

// ErrUnsupportedOperationSentinel is a sentinel error for unsupported operations (for error checking).
var ErrUnsupportedOperationSentinel = errs.NewError(CodeUnsupportedOperation, "unsupported operation", nil)

// ErrCircularDependencySentinel is a sentinel error for circular dependency (for error checking).
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidRegistration creates an error for a registration that cannot be honoured
func ErrInvalidRegistration(serviceName, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidRegistration,
		fmt.Sprintf("cannot register '%s': %s", serviceName, reason),
		nil,
	).WithContext("service", serviceName).(*errs.Error)
}

// ErrConflict creates an error for a registration that clashes with an existing one
func ErrConflict(serviceName, reason string) *errs.Error {
	return errs.NewError(
		CodeConflict,
		fmt.Sprintf("service '%s' conflict: %s", serviceName, reason),
		nil,
	).WithContext("service", serviceName).(*errs.Error)
}

// ErrNoPublicConstructor creates an error for an implementation without a usable constructor
func ErrNoPublicConstructor(implName string) *errs.Error {
	return errs.NewError(
		CodeNoPublicConstructor,
		fmt.Sprintf("cannot register: no public constructor found in '%s'", implName),
		nil,
	).WithContext("implementation", implName).(*errs.Error)
}

// ErrAmbiguousConstructor creates an error for an implementation with competing constructors
func ErrAmbiguousConstructor(implName string, candidates int) *errs.Error {
	return errs.NewError(
		CodeAmbiguousConstructor,
		fmt.Sprintf("cannot register: %d constructors found in '%s' and none is preferred", candidates, implName),
		nil,
	).WithContext("implementation", implName).
		WithContext("candidates", candidates).(*errs.Error)
}

// ErrInvalidConstructor creates an error for a constructor with an unusable signature
func ErrInvalidConstructor(constructor string, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidConstructor,
		fmt.Sprintf("invalid constructor %s: %s", constructor, reason),
		nil,
	).WithContext("constructor", constructor).(*errs.Error)
}

// ErrServiceNotFound creates an error for when a service is not found
func ErrServiceNotFound(serviceName, key string) *errs.Error {
	msg := fmt.Sprintf("service '%s' not found", serviceName)
	if key != "" {
		msg = fmt.Sprintf("service '%s' not found for key '%s'", serviceName, key)
	}

	return errs.NewError(CodeServiceNotFound, msg, nil).
		WithContext("service", serviceName).
		WithContext("key", key).(*errs.Error)
}

// ErrUnsupportedOperation creates an error for an operation the container does not implement
func ErrUnsupportedOperation(operation, serviceName string) *errs.Error {
	return errs.NewError(
		CodeUnsupportedOperation,
		fmt.Sprintf("%s is not supported (service '%s')", operation, serviceName),
		nil,
	).WithContext("service", serviceName).
		WithContext("operation", operation).(*errs.Error)
}

// ErrCircularDependency creates an error for circular dependency detection
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %v", cycle),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrTypeMismatch creates an error for type mismatch during resolution
func ErrTypeMismatch(serviceName string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("service '%s' type mismatch: got %T", serviceName, actual),
		nil,
	).WithContext("service", serviceName).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// NewServiceError creates an error for service operations
func NewServiceError(serviceName, operation string, cause error) *errs.Error {
	return errs.NewError(
		CodeServiceError,
		fmt.Sprintf("service '%s' error during %s", serviceName, operation),
		cause,
	).WithContext("service", serviceName).
		WithContext("operation", operation).(*errs.Error)
}
