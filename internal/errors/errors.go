package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthorizationError) Error() string { return e.Message }

func (e *NotFoundError) Error() string { return e.Message }

func (e *ConflictError) Error() string { return e.Message }

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error { return e.Cause }

// NewValidationError creates a ValidationError with the generic code.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeValidation, Message: message}
}

// NewValidationErrorCode creates a ValidationError with a specific code.
func NewValidationErrorCode(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func NewAuthenticationError(code, message string) *AuthenticationError {
	return &AuthenticationError{Code: code, Message: message}
}

func NewAuthorizationError(code, message string) *AuthorizationError {
	return &AuthorizationError{Code: code, Message: message}
}

// NewForbidden is shorthand for the generic authorization failure.
func NewForbidden(message string) *AuthorizationError {
	return &AuthorizationError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(code, message string) *NotFoundError {
	return &NotFoundError{Code: code, Message: message}
}

func NewConflictError(code, message string) *ConflictError {
	return &ConflictError{Code: code, Message: message}
}

// NewStorageError creates a new StorageError
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{Message: message, Cause: cause}
}

// HTTPStatus maps err onto the status code of its taxonomy class.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		authn      *AuthenticationError
		authz      *AuthorizationError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.As(err, &validation):
		return http.StatusBadRequest
	case stderrors.As(err, &authn):
		return http.StatusUnauthorized
	case stderrors.As(err, &authz):
		return http.StatusForbidden
	case stderrors.As(err, &notFound):
		return http.StatusNotFound
	case stderrors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the envelope code carried by err, or CodeInternal.
func Code(err error) string {
	var (
		validation *ValidationError
		authn      *AuthenticationError
		authz      *AuthorizationError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case stderrors.As(err, &validation):
		return validation.Code
	case stderrors.As(err, &authn):
		return authn.Code
	case stderrors.As(err, &authz):
		return authz.Code
	case stderrors.As(err, &notFound):
		return notFound.Code
	case stderrors.As(err, &conflict):
		return conflict.Code
	default:
		return CodeInternal
	}
}

// Field returns the offending field of a ValidationError, if any.
func Field(err error) string {
	var validation *ValidationError
	if stderrors.As(err, &validation) {
		return validation.Field
	}
	return ""
}

// IsClientError reports whether err belongs to a 4xx class.
func IsClientError(err error) bool {
	status := HTTPStatus(err)
	return status >= 400 && status < 500
}
