package utils

import (
	"fmt"
	"net/http"
)

// FieldError carries per-field detail for validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the domain error surfaced by the service layer. Status
// decides the HTTP code; Fields is populated for validation errors;
// Extra is merged into the error response body when present.
type AppError struct {
	Status  int
	Message string
	Fields  []FieldError
	Extra   map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError reports malformed or missing input (400).
func NewValidationError(message string, fields ...FieldError) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// NewNotFoundError reports an absent or access-scoped-away entity (404).
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// NewConflictError reports a domain-rule conflict such as an
// overlapping booking, an already-cancelled booking, or a duplicate
// email. Conflicts surface as 400 responses.
func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// NewForbiddenError reports a role-guarded action (403).
func NewForbiddenError(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

// NewUnauthorizedError reports missing or invalid credentials (401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

// NewStorageError wraps an unexpected data-store failure (500). The
// underlying message is passed through.
func NewStorageError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
}
