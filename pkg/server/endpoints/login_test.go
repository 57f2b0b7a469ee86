package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/token"
)

func loginManager() *token.Manager {
	return token.NewManager([]byte("test-signing-key"), time.Hour, 7*24*time.Hour)
}

func TestHandleLogin(t *testing.T) {
	t.Run("valid credentials yield a bearer token", func(t *testing.T) {
		provider := NewMockProvider()
		provider.On("VerifyCredential", "alice", "Str0ng!Pass").
			Return(&model.User{ID: 5, Username: "alice"}, nil)
		provider.On("RolesOf", uint(5)).Return([]string{"user"}, nil)

		manager := loginManager()
		handler := handleLogin(provider, manager)

		body := `{"username": "alice", "password": "Str0ng!Pass"}`
		req := httptest.NewRequest("POST", "/login/login", jsonBody(body))
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Bearer", resp.Type)
		assert.True(t, resp.ExpiresAt.After(time.Now()))

		claims, err := manager.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.Equal(t, []string{"user"}, claims.Roles)
	})

	t.Run("remember me extends the token lifetime", func(t *testing.T) {
		provider := NewMockProvider()
		provider.On("VerifyCredential", "alice", "Str0ng!Pass").
			Return(&model.User{ID: 5, Username: "alice"}, nil)
		provider.On("RolesOf", uint(5)).Return([]string{"user"}, nil)

		handler := handleLogin(provider, loginManager())

		body := `{"username": "alice", "password": "Str0ng!Pass", "rememberme": true}`
		req := httptest.NewRequest("POST", "/login/login", jsonBody(body))
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.ExpiresAt.After(time.Now().Add(24*time.Hour)))
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		provider := NewMockProvider()
		provider.On("VerifyCredential", "alice", "wrong").
			Return(nil, identity.ErrInvalidCredentials)

		handler := handleLogin(provider, loginManager())

		body := `{"username": "alice", "password": "wrong"}`
		req := httptest.NewRequest("POST", "/login/login", jsonBody(body))
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "invalid username or password"}`, w.Body.String())
	})

	t.Run("missing fields are rejected before the provider is asked", func(t *testing.T) {
		provider := NewMockProvider()

		handler := handleLogin(provider, loginManager())

		req := httptest.NewRequest("POST", "/login/login", jsonBody(`{}`))
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		provider.AssertNotCalled(t, "VerifyCredential", mock.Anything, mock.Anything)
	})
}

func TestHandleLogout(t *testing.T) {
	handler := handleLogout()

	req := requestWithIdentity("POST", "/login/logout", "", "alice", "user")
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "logged out"}`, w.Body.String())
}
