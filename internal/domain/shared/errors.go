package shared

import (
	"github.com/samber/oops"
)

// Domain error codes
const (
	ErrCodeInvalidInput     = 1001
	ErrCodeNotFound         = 1002
	ErrCodeInvalidOperation = 1003

	// Portal specific errors (2000-2999)
	ErrCodeEntityWontFit     = 2001
	ErrCodeInvalidPortalAxis = 2002
	ErrCodeInvalidName       = 2003
	ErrCodeInvalidColor      = 2004

	// World specific errors (3000-3999)
	ErrCodeInvalidDimension = 3001
	ErrCodeInvalidRegion    = 3002
	ErrCodeOutOfBounds      = 3003
	ErrCodeInvalidEntity    = 3004
)

// NewDomainError creates a new domain error using oops
func NewDomainError(code int, message string) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Errorf(message)
}

// NewDomainErrorf creates a new domain error with formatted message
func NewDomainErrorf(code int, format string, args ...interface{}) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Errorf(format, args...)
}

// WrapDomainError wraps an existing error with domain context
func WrapDomainError(err error, code int, message string) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Wrapf(err, message)
}

// codeToString converts int error code to string
func codeToString(code int) string {
	switch code {
	case ErrCodeInvalidInput:
		return "INVALID_INPUT"
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeInvalidOperation:
		return "INVALID_OPERATION"
	case ErrCodeEntityWontFit:
		return "ENTITY_WONT_FIT"
	case ErrCodeInvalidPortalAxis:
		return "INVALID_PORTAL_AXIS"
	case ErrCodeInvalidName:
		return "INVALID_NAME"
	case ErrCodeInvalidColor:
		return "INVALID_COLOR"
	case ErrCodeInvalidDimension:
		return "INVALID_DIMENSION"
	case ErrCodeInvalidRegion:
		return "INVALID_REGION"
	case ErrCodeOutOfBounds:
		return "OUT_OF_BOUNDS"
	case ErrCodeInvalidEntity:
		return "INVALID_ENTITY"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Common domain error builders
func ErrInvalidInput(msg string) error {
	return NewDomainError(ErrCodeInvalidInput, msg)
}

func ErrNotFound(resource string) error {
	return NewDomainErrorf(ErrCodeNotFound, "%s not found", resource)
}

func ErrInvalidOperation(operation string) error {
	return NewDomainErrorf(ErrCodeInvalidOperation, "Invalid operation: %s", operation)
}

// ErrEntityWontFit signals that an entity's hitbox cannot pass through a
// portal opening, so no destination geometry exists for it.
func ErrEntityWontFit() error {
	return NewDomainError(ErrCodeEntityWontFit, "Entity won't fit")
}

func ErrInvalidDimension(name string) error {
	return NewDomainErrorf(ErrCodeInvalidDimension, "unknown dimension %q", name)
}

func ErrInvalidRegion(msg string) error {
	return NewDomainError(ErrCodeInvalidRegion, msg)
}

func ErrOutOfBounds(what string) error {
	return NewDomainErrorf(ErrCodeOutOfBounds, "%s is outside the world border", what)
}
