package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/mocks"
	"github.com/oleh-26-01/TaskManagementAPI/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Sup3r$ecret"

// newUserTestRouter wires a UserHandler backed by mock stores onto the same
// routes the server registers.
func newUserTestRouter(userStore *mocks.MockUserStore, jwtService *mocks.MockJWTService) http.Handler {
	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	userService := service.NewUserService(userStore, mocks.NewDB(), jwtService, verifier, verifier, slog.Default())
	handler := NewUserHandler(userService, slog.Default())

	r := chi.NewRouter()
	r.Post("/api/users/register", handler.Register)
	r.Post("/api/users/login", handler.Login)
	r.Get("/api/users/{id}", handler.GetByID)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

func TestUserHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a user and returns 201", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		router := newUserTestRouter(userStore, &mocks.MockJWTService{})

		rec := postJSON(t, router, "/api/users/register", RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: testPassword,
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp UserResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.NotEmpty(t, resp.ID)

		// The response must never carry password material
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), testPassword)
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		t.Parallel()

		router := newUserTestRouter(mocks.NewMockUserStore(), &mocks.MockJWTService{})

		req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing fields with 400", func(t *testing.T) {
		t.Parallel()

		router := newUserTestRouter(mocks.NewMockUserStore(), &mocks.MockJWTService{})

		rec := postJSON(t, router, "/api/users/register", RegisterRequest{Username: "alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a weak password with 400", func(t *testing.T) {
		t.Parallel()

		router := newUserTestRouter(mocks.NewMockUserStore(), &mocks.MockJWTService{})

		rec := postJSON(t, router, "/api/users/register", RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "alllowercase1",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		decodeBody(t, rec, &resp)
		assert.Contains(t, resp["message"], "Password must be")
	})

	t.Run("duplicate username returns 409", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		existing, err := domain.NewUser("alice", "alice@example.com", "hashed:pw")
		require.NoError(t, err)
		userStore.Users["alice"] = existing

		router := newUserTestRouter(userStore, &mocks.MockJWTService{})

		rec := postJSON(t, router, "/api/users/register", RegisterRequest{
			Username: "alice",
			Email:    "new@example.com",
			Password: testPassword,
		})

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp map[string]string
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Username already exists", resp["message"])
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		existing, err := domain.NewUser("alice", "alice@example.com", "hashed:pw")
		require.NoError(t, err)
		userStore.Users["alice"] = existing

		router := newUserTestRouter(userStore, &mocks.MockJWTService{})

		rec := postJSON(t, router, "/api/users/register", RegisterRequest{
			Username: "bob",
			Email:    "alice@example.com",
			Password: testPassword,
		})

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp map[string]string
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Email already exists", resp["message"])
	})
}

func TestUserHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return a token", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user, err := domain.NewUser("alice", "alice@example.com", "hashed:"+testPassword)
		require.NoError(t, err)
		userStore.Users["alice"] = user

		router := newUserTestRouter(userStore, &mocks.MockJWTService{Token: "signed-token"})

		rec := postJSON(t, router, "/api/users/login", LoginRequest{
			Username: "alice",
			Password: testPassword,
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("unknown username and wrong password get the same 401", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user, err := domain.NewUser("alice", "alice@example.com", "hashed:"+testPassword)
		require.NoError(t, err)
		userStore.Users["alice"] = user

		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: false}
		userService := service.NewUserService(userStore, mocks.NewDB(), &mocks.MockJWTService{Token: "t"}, verifier, verifier, slog.Default())
		handler := NewUserHandler(userService, slog.Default())

		r := chi.NewRouter()
		r.Post("/api/users/login", handler.Login)

		unknownRec := postJSON(t, r, "/api/users/login", LoginRequest{Username: "nobody", Password: testPassword})
		wrongRec := postJSON(t, r, "/api/users/login", LoginRequest{Username: "alice", Password: "Wr0ng$ecret"})

		assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
		assert.JSONEq(t, unknownRec.Body.String(), wrongRec.Body.String())
	})

	t.Run("rejects missing fields with 400", func(t *testing.T) {
		t.Parallel()

		router := newUserTestRouter(mocks.NewMockUserStore(), &mocks.MockJWTService{})

		rec := postJSON(t, router, "/api/users/login", LoginRequest{Username: "alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandlerGetByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the user without password material", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user, err := domain.NewUser("alice", "alice@example.com", "hashed:pw")
		require.NoError(t, err)
		userStore.Users["alice"] = user

		router := newUserTestRouter(userStore, &mocks.MockJWTService{})

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%s", user.ID), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "alice", resp.Username)
		assert.NotContains(t, rec.Body.String(), "hashed:pw")
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		t.Parallel()

		router := newUserTestRouter(mocks.NewMockUserStore(), &mocks.MockJWTService{})

		req := httptest.NewRequest(http.MethodGet, "/api/users/6a2f41a3-c54c-4fd4-a6b1-2f3cf44bb59f", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed ID returns 400", func(t *testing.T) {
		t.Parallel()

		router := newUserTestRouter(mocks.NewMockUserStore(), &mocks.MockJWTService{})

		req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
