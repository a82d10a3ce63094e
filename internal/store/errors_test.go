package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peoplehub/hrdocs/internal/store"
)

func TestError_Error(t *testing.T) {
	err := &store.Error{Code: http.StatusNotFound, Message: "not found"}

	assert.Equal(t, "not found", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	err := &store.Error{
		Code:    http.StatusNotFound,
		Message: "not found",
		Err:     errors.New("underlying error"),
	}

	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "underlying error")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := store.ErrInvalidInput.WithCause(cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestError_WithMessage(t *testing.T) {
	modified := store.ErrNotFound.WithMessage("smart tag not found")

	assert.Equal(t, http.StatusNotFound, modified.Code)
	assert.Equal(t, "smart tag not found", modified.Message)
}

func TestError_IsMatchesDerivedSentinels(t *testing.T) {
	derived := store.ErrAlreadyExists.WithCause(errors.New("UNIQUE constraint failed: smart_tags.tag"))
	wrapped := fmt.Errorf("create smart tag: %w", derived)

	assert.ErrorIs(t, wrapped, store.ErrAlreadyExists)
	assert.NotErrorIs(t, wrapped, store.ErrConflict, "same status, different sentinel")
	assert.NotErrorIs(t, wrapped, store.ErrNotFound)

	renamed := store.ErrNotFound.WithMessage("document not found").WithCause(errors.New("key not found"))
	assert.ErrorIs(t, renamed, store.ErrNotFound)
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *store.Error
		wantCode int
	}{
		{name: "not found", err: store.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "already exists", err: store.ErrAlreadyExists, wantCode: http.StatusConflict},
		{name: "conflict", err: store.ErrConflict, wantCode: http.StatusConflict},
		{name: "invalid input", err: store.ErrInvalidInput, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.HTTPCode())
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}
