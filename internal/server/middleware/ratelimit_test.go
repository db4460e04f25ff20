package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPRateLimiter(t *testing.T) {
	mw, err := NewIPRateLimiter(setupTestLogger(), "2-M")
	require.NoError(t, err)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001").Code)

	limited := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), "rate limit exceeded")

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code)
}

func TestNewIPRateLimiter_Disabled(t *testing.T) {
	mw, err := NewIPRateLimiter(setupTestLogger(), "")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	for range 10 {
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestNewIPRateLimiter_BadFormat(t *testing.T) {
	_, err := NewIPRateLimiter(setupTestLogger(), "lots")
	assert.Error(t, err)
}
