package services

import (
	"errors"
	"fmt"
)

// Error kinds a ServiceError can carry. Callers match them with errors.Is.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// ServiceError is a client-facing failure with a stable code
type ServiceError struct {
	Kind    error
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap exposes the kind to errors.Is
func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func badRequest(code, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: ErrBadRequest, Code: code, Message: fmt.Sprintf(format, args...)}
}

func notFound(code, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: ErrNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func conflict(code, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: ErrConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}
