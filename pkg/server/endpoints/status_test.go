package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleStatus(t *testing.T) {
	handler := handleStatus()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"version"`)
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		healthStore := NewMockHealthStore()
		healthStore.On("CheckConnectivity").Return(nil)

		handler := handleHealth(healthStore)

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	})

	t.Run("unreachable database", func(t *testing.T) {
		healthStore := NewMockHealthStore()
		healthStore.On("CheckConnectivity").Return(errors.New("dial tcp: connection refused"))

		handler := handleHealth(healthStore)

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "database connectivity check failed")
		assert.NotContains(t, w.Body.String(), "dial tcp")
	})
}
