package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorConstructors(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input"), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("missing"), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("no"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("denied"), "FORBIDDEN", http.StatusForbidden},
		{NewConflict("dup"), "CONFLICT", http.StatusConflict},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestDomainErrorDetails(t *testing.T) {
	err := NewValidationError("Validation error", "days must be at least 1", "user_id is required")
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, []string{"days must be at least 1", "user_id is required"}, domainErr.Details)
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("passes through domain errors", func(t *testing.T) {
		original := NewNotFound("missing")
		var want *DomainError
		require.ErrorAs(t, original, &want)
		assert.Same(t, want, ToDomainError(original))
	})

	t.Run("unwraps wrapped domain errors", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NewForbidden("denied"))
		domainErr := ToDomainError(wrapped)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("maps pgx.ErrNoRows to not found", func(t *testing.T) {
		domainErr := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	})

	t.Run("defaults to internal error", func(t *testing.T) {
		domainErr := ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
		assert.Equal(t, "internal server error", domainErr.Message)
	})
}
