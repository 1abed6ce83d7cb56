package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vexa-app/vexa-web/internal/middleware"
)

func authRequest(t *testing.T, token, header string) int {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/prejoin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	w := httptest.NewRecorder()
	middleware.NewAdminAuth(token).Authenticate(next).ServeHTTP(w, req)
	return w.Code
}

func TestAdminAuth(t *testing.T) {
	assert.Equal(t, http.StatusOK, authRequest(t, "secret", "Bearer secret"))
	assert.Equal(t, http.StatusOK, authRequest(t, "secret", "bearer secret"))

	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "secret", ""))
	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "secret", "Bearer wrong"))
	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "secret", "Basic secret"))
	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "secret", "Bearer"))
}

func TestAdminAuth_DisabledWithoutToken(t *testing.T) {
	// No configured token means nothing gets through, not even empty creds.
	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "", ""))
	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "", "Bearer "))
	assert.Equal(t, http.StatusUnauthorized, authRequest(t, "", "Bearer anything"))
}
