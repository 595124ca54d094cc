package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[SCHEDULE] bad term", (&AppError{Code: "SCHEDULE", Message: "bad term"}).Error())
	assert.Equal(t, "bad term", (&AppError{Message: "bad term"}).Error())
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("loading statement: %w", NewNotFound("obligation", 42))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "loading statement: obligation 42 not found")

	var nf *NotFoundError
	if assert.ErrorAs(t, err, &nf) {
		assert.Equal(t, "obligation", nf.Resource)
		assert.Equal(t, int64(42), nf.ID)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("amount", "must be positive")

	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "amount", vErr.Field)
	assert.Equal(t, "validation failed for field 'amount': must be positive", vErr.Error())
}

func TestValidationErrorWithoutField(t *testing.T) {
	err := &ValidationError{Message: "bad input"}
	assert.Equal(t, "validation failed: bad input", err.Error())
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDatabaseError(cause, "failed to load payments")

	assert.Equal(t, "[DB_ERROR] failed to load payments", err.Error())
	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, cause)
}
