package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator maps token strings to identities for unit tests.
type testTokenValidator struct {
	tokens map[string]testClaims
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{tokens: make(map[string]testClaims)}
}

func (v *testTokenValidator) add(token string, userID uuid.UUID, role string) {
	v.tokens[token] = testClaims{userID: userID, role: role}
}

func (v *testTokenValidator) ValidateToken(tokenString string) (ClaimsGetter, error) {
	claims, ok := v.tokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &claims, nil
}

type testClaims struct {
	userID uuid.UUID
	role   string
}

func (c *testClaims) GetUserID() uuid.UUID { return c.userID }
func (c *testClaims) GetRole() string      { return c.role }

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	userID := uuid.New()
	validator.add("token-123", userID, "customer")

	var gotUserID uuid.UUID
	var gotRole string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotUserID, err = GetUserID(r)
		require.NoError(t, err)
		gotRole, err = GetRole(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest("token-123"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "customer", gotRole)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handlerCalled := false
	handler := AuthMiddleware(newTestTokenValidator())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(""))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_HeaderFormats(t *testing.T) {
	validator := newTestTokenValidator()
	validator.add("token-123", uuid.New(), "plumber")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing Bearer prefix", "token-123", http.StatusUnauthorized},
		{"only Bearer", "Bearer", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer other-token", http.StatusUnauthorized},
		{"lowercase bearer", "bearer token-123", http.StatusOK},
		{"mixed case bearer", "BeArEr token-123", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			req.Header.Set("Authorization", tt.authHeader)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	validator := newTestTokenValidator()
	validator.add("admin-token", uuid.New(), "admin")
	validator.add("customer-token", uuid.New(), "customer")

	handler := AuthMiddleware(validator)(RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest("admin-token"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest("customer-token"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	validator := newTestTokenValidator()
	validator.add("plumber-token", uuid.New(), "plumber")

	handler := AuthMiddleware(validator)(RequireRole("plumber", "admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest("plumber-token"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	// RequireRole without AuthMiddleware in front finds no role
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/attributes", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)

	got, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestGetRole_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)

	role, err := GetRole(req)
	assert.Error(t, err)
	assert.Empty(t, role)
}
