// Package apperrors holds the error values shared by the repositories, the
// domain services and the HTTP layer. Handlers map them to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Lookup and input failures.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("resource conflict")
)

// Payment admission failures.
var (
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrObligationSettled    = errors.New("obligation is already fully settled")
	ErrObligationNotPayable = errors.New("obligation does not accept payments in its current status")
)

// Infrastructure failures.
var (
	ErrDatabase       = errors.New("database error")
	ErrInternalServer = errors.New("internal server error")
)

const CodeDatabase = "DB_ERROR"

// NotFoundError names the missing record. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError matches both ErrValidation and *ValidationError.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// AppError carries a machine readable code through to the API response.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WrapDatabaseError hides the driver error behind message while keeping it
// reachable through errors.Is for both ErrDatabase and cause.
func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    CodeDatabase,
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
