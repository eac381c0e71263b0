package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error; the HTTP layer maps kinds to status codes.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindDuplicate
	KindInvalidCredentials
	KindUserInactive
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUserInactive:
		return "user_inactive"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is the single error type raised by the domain and application layers.
// Code is stable and machine readable; Details is optional structured context.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Code so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: "Unauthorized"}
	ErrForbidden          = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "Forbidden resource"}
	ErrNotFound           = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "Resource not found"}
	ErrDuplicate          = &Error{Kind: KindDuplicate, Code: "DUPLICATE", Message: "Resource already exists"}
	ErrValidation         = &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "Validation failed"}
	ErrUserInactive       = &Error{Kind: KindUserInactive, Code: "USER_INACTIVE", Message: "User is inactive"}

	ErrMissingRefreshToken = &Error{Kind: KindValidation, Code: "MISSING_REFRESH_TOKEN", Message: "Refresh token is required"}
)

func NewValidationError(message string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, Code: ErrValidation.Code, Message: message, Details: details}
}

func NewNotFoundError(resource, identifier string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    ErrNotFound.Code,
		Message: fmt.Sprintf("%s with identifier %s not found", resource, identifier),
		Details: map[string]any{"resource": resource, "identifier": identifier},
	}
}

func NewDuplicateError(resource, field, value string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Code:    ErrDuplicate.Code,
		Message: fmt.Sprintf("%s with %s %s already exists", resource, field, value),
		Details: map[string]any{"resource": resource, "field": field, "value": value},
	}
}

func NewUserInactiveError(username string) *Error {
	return &Error{
		Kind:    KindUserInactive,
		Code:    ErrUserInactive.Code,
		Message: fmt.Sprintf("User %s is inactive", username),
		Details: map[string]any{"username": username},
	}
}

func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: ErrUnauthorized.Code, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Code: ErrForbidden.Code, Message: message}
}

// AsError unwraps err into a *Error when possible.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
