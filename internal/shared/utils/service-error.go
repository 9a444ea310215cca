package utils

import (
	"fmt"
	"net/http"
)

// Types d'erreurs métier
const (
	ErrorTypeValidation  = "validation"
	ErrorTypeNotFound    = "not_found"
	ErrorTypeConflict    = "conflict"
	ErrorTypeUnavailable = "unavailable"
	ErrorTypeInternal    = "internal"
)

// ServiceError représente une erreur métier avec type et détails
type ServiceError struct {
	Type    string                 `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
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

// HTTPStatus traduit le type d'erreur en code HTTP
func (e *ServiceError) HTTPStatus() int {
	switch e.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NewNotFoundError(code, message string) *ServiceError {
	return &ServiceError{Type: ErrorTypeNotFound, Code: code, Message: message}
}

func NewValidationError(code, message string) *ServiceError {
	return &ServiceError{Type: ErrorTypeValidation, Code: code, Message: message}
}

func NewConflictError(code, message string) *ServiceError {
	return &ServiceError{Type: ErrorTypeConflict, Code: code, Message: message}
}

func NewUnavailableError(code, message string, err error) *ServiceError {
	return &ServiceError{Type: ErrorTypeUnavailable, Code: code, Message: message, Err: err}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Type: ErrorTypeInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}
