package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/service/auth"
	"github.com/oleh-26-01/TaskManagementAPI/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"weak password", domain.ErrInvalidPassword, http.StatusBadRequest},
		{"bad status", domain.ErrInvalidStatus, http.StatusBadRequest},
		{"bad priority", domain.ErrInvalidPriority, http.StatusBadRequest},
		{"bad sort field", domain.ErrInvalidSortField, http.StatusBadRequest},
		{"bad ID", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"field-level validation", domain.ErrEmptyTitle, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known errors get fixed messages", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Invalid username or password", GetSafeErrorMessage(auth.ErrInvalidCredentials))
		assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
		assert.Equal(t, "Username already exists", GetSafeErrorMessage(store.ErrUsernameExists))
		assert.Equal(t, "Invalid task status", GetSafeErrorMessage(domain.ErrInvalidStatus))
	})

	t.Run("unexpected errors never leak their text", func(t *testing.T) {
		t.Parallel()

		internal := errors.New("pq: connection to db-prod-1 refused")
		msg := GetSafeErrorMessage(internal)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "db-prod-1")
	})

	t.Run("field-level validation errors are echoed", func(t *testing.T) {
		t.Parallel()

		err := domain.NewValidationError("pageNumber", "must be an integer", domain.ErrValidation)
		assert.Contains(t, GetSafeErrorMessage(err), "pageNumber")
	})
}
