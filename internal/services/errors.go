package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so the HTTP layer can map them
// to status codes without inspecting message text.
type ErrorKind int

const (
	// KindValidation: malformed or missing input.
	KindValidation ErrorKind = iota
	// KindConflict: uniqueness or capacity violation.
	KindConflict
	// KindUnauthenticated: no valid session.
	KindUnauthenticated
	// KindForbidden: wrong role or not the resource owner.
	KindForbidden
	// KindNotFound: referenced id absent.
	KindNotFound
	// KindPersistence: transaction or storage failure.
	KindPersistence
)

// ServiceError carries a kind plus a caller-safe message. Internal
// detail stays in the wrapped error and is only ever logged.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewAuthenticationError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, Message: message}
}

func NewAuthorizationError(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewPersistenceError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf extracts the error kind; unclassified errors are treated as
// persistence failures.
func KindOf(err error) ErrorKind {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindPersistence
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return "Internal server error"
}
