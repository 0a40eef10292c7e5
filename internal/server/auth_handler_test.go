package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/plumber-matcher/internal/config"
	"github.com/jonathan/plumber-matcher/internal/types"
)

func newTestAuthHandler() (*AuthHandler, *fakeStore) {
	store := newFakeStore()
	userService := NewUserService(store, &config.PasswordConfig{BcryptCost: 10})
	return NewAuthHandler(userService, newTestJWTService()), store
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	handler, _ := newTestAuthHandler()

	w := postJSON(t, handler.Register, "/auth/register", map[string]string{
		"name":     "Ramesh Patel",
		"email":    "ramesh@example.com",
		"password": "secret-password",
		"role":     "plumber",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, types.RolePlumber, resp.User.Role)

	claims, err := newTestJWTService().ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.GetUserID())
	assert.Equal(t, types.RolePlumber, claims.GetRole())
}

func TestAuthHandler_RegisterAdminRejected(t *testing.T) {
	handler, _ := newTestAuthHandler()

	// admin accounts cannot be self-registered
	w := postJSON(t, handler.Register, "/auth/register", map[string]string{
		"name":     "Root",
		"email":    "root@example.com",
		"password": "secret-password",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	handler, _ := newTestAuthHandler()

	body := map[string]string{
		"name": "Asha Desai", "email": "asha@example.com", "password": "secret-password", "role": "customer",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", body).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, handler.Register, "/auth/register", body).Code)
}

func TestAuthHandler_RegisterInvalidEmail(t *testing.T) {
	handler, _ := newTestAuthHandler()

	w := postJSON(t, handler.Register, "/auth/register", map[string]string{
		"name": "Asha Desai", "email": "not-an-email", "password": "secret-password", "role": "customer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	handler, _ := newTestAuthHandler()

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", map[string]string{
		"name": "Asha Desai", "email": "asha@example.com", "password": "secret-password", "role": "customer",
	}).Code)

	w := postJSON(t, handler.Login, "/auth/login", map[string]string{
		"email": "asha@example.com", "password": "secret-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, types.RoleCustomer, resp.User.Role)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	handler, _ := newTestAuthHandler()

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", map[string]string{
		"name": "Asha Desai", "email": "asha@example.com", "password": "secret-password", "role": "customer",
	}).Code)

	w := postJSON(t, handler.Login, "/auth/login", map[string]string{
		"email": "asha@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	handler, store := newTestAuthHandler()

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", map[string]string{
		"name": "Asha Desai", "email": "asha@example.com", "password": "old-password-123", "role": "customer",
	}).Code)
	userID := store.byEmail["asha@example.com"]

	body, err := json.Marshal(map[string]string{
		"current_password": "old-password-123",
		"new_password":     "new-password-456",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.UpdatePasswordWithUserID(w, req, userID)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, postJSON(t, handler.Login, "/auth/login", map[string]string{
		"email": "asha@example.com", "password": "old-password-123",
	}).Code)
	assert.Equal(t, http.StatusOK, postJSON(t, handler.Login, "/auth/login", map[string]string{
		"email": "asha@example.com", "password": "new-password-456",
	}).Code)
}
