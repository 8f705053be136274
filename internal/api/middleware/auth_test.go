package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/oleh-26-01/TaskManagementAPI/internal/api/shared"
	"github.com/oleh-26-01/TaskManagementAPI/internal/mocks"
	"github.com/oleh-26-01/TaskManagementAPI/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	okHandler := func(t *testing.T) (http.Handler, *uuid.UUID) {
		t.Helper()
		var gotUserID uuid.UUID
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserID(r)
			require.True(t, ok)
			gotUserID = id
			w.WriteHeader(http.StatusOK)
		}), &gotUserID
	}

	t.Run("valid bearer token passes and exposes the user ID", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: userID, Username: "alice"},
		}
		next, gotUserID := okHandler(t)
		handler := NewAuthMiddleware(jwtService).Authenticate(next)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, *gotUserID)
	})

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantMessage string
	}{
		{
			name:        "missing header",
			header:      "",
			wantMessage: "Authorization header required",
		},
		{
			name:        "not a bearer scheme",
			header:      "Basic dXNlcjpwYXNz",
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "bearer with no token",
			header:      "Bearer",
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "expired token",
			header:      "Bearer expired",
			validateErr: auth.ErrExpiredToken,
			wantMessage: "Token expired",
		},
		{
			name:        "invalid token",
			header:      "Bearer garbage",
			validateErr: auth.ErrInvalidToken,
			wantMessage: "Invalid token",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
					if tt.validateErr != nil {
						return nil, tt.validateErr
					}
					return &auth.Claims{UserID: userID}, nil
				},
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})
			handler := NewAuthMiddleware(jwtService).Authenticate(next)

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp["message"])
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	t.Run("absent user ID reports not found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := GetUserID(req)
		assert.False(t, ok)
	})

	t.Run("nil user ID reports not found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.Nil)
		_, ok := GetUserID(req.WithContext(ctx))
		assert.False(t, ok)
	})
}
