package apperror

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFindsWrappedError(t *testing.T) {
	err := errors.Wrap(NewNotFoundError("Catalog item"), "add to draft")

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Catalog item not found", appErr.Message)

	_, ok = As(errors.New("connection reset"))
	assert.False(t, ok)
}

func TestGetAppErrorFallsBackTo500(t *testing.T) {
	appErr := GetAppError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "connection reset", appErr.Message)

	assert.Same(t, ErrInvalidToken, GetAppError(ErrInvalidToken))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "name", Message: "Supplier name is required"},
		{Field: "type", Message: "Unknown supplier type: broker"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, "Validation failed: name, type", err.Error())
	assert.Equal(t, "Conflict here", NewConflictError("Conflict here").Error())
}
