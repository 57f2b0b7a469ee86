package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/token"
)

func testManager() *token.Manager {
	return token.NewManager([]byte("test-signing-key"), time.Hour, 24*time.Hour)
}

func TestNewTokenAuthenticator(t *testing.T) {
	auth := NewTokenAuthenticator(nil)
	assert.NotNil(t, auth)
	assert.Nil(t, auth.Tokens)
}

func TestMiddleware_MissingAuthorization(t *testing.T) {
	auth := NewTokenAuthenticator(testManager())

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization missing", rec.Body.String())
}

func TestMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	auth := NewTokenAuthenticator(testManager())

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"token scheme", `Token token="xyz"`},
		{"random string", "something random"},
		{"bearer without token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Malformed authorization header", rec.Body.String())
		})
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	auth := NewTokenAuthenticator(testManager())

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", mustIssue(t, token.NewManager([]byte("other-key"), time.Hour, time.Hour), "alice")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Invalid or expired token", rec.Body.String())
		})
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	manager := token.NewManager([]byte("test-signing-key"), -time.Minute, -time.Minute)
	auth := NewTokenAuthenticator(manager)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	expired := mustIssue(t, manager, "alice")

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", rec.Body.String())
}

func TestMiddleware_ValidToken(t *testing.T) {
	manager := testManager()
	auth := NewTokenAuthenticator(manager)

	tokenStr, _, err := manager.Issue("alice", []string{"admin"}, false)
	require.NoError(t, err)

	var seen *identity.Identity
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	req.RemoteAddr = "192.0.2.10:54321"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, []string{"admin"}, seen.Roles)
	assert.Equal(t, "192.0.2.10", seen.RemoteIP.String())
	assert.True(t, seen.ExpiresAt.After(time.Now()))
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		identity *identity.Identity
		required []string
		expected int
	}{
		{
			name:     "no identity",
			identity: nil,
			required: []string{"admin"},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "has required role",
			identity: &identity.Identity{Username: "alice", Roles: []string{"admin"}},
			required: []string{"admin"},
			expected: http.StatusOK,
		},
		{
			name:     "has one of several",
			identity: &identity.Identity{Username: "bob", Roles: []string{"user"}},
			required: []string{"admin", "user"},
			expected: http.StatusOK,
		},
		{
			name:     "missing role",
			identity: &identity.Identity{Username: "bob", Roles: []string{"user"}},
			required: []string{"admin"},
			expected: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.required...)(ok)

			req := httptest.NewRequest("DELETE", "/test", nil)
			if tt.identity != nil {
				req = req.WithContext(identity.Set(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func mustIssue(t *testing.T, m *token.Manager, username string) string {
	t.Helper()
	tokenStr, _, err := m.Issue(username, nil, false)
	require.NoError(t, err)
	return tokenStr
}
