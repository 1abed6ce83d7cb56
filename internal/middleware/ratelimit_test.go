package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vexa-app/vexa-web/internal/middleware"
)

func TestIPRateLimiter_BurstThenThrottle(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(1, 3)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h := limiter.Limit(next)

	do := func(remoteAddr string) int {
		req := httptest.NewRequest("POST", "/api/prejoin", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, do("10.0.0.1:1234"), "request %d within burst", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))

	// A different client gets its own bucket.
	assert.Equal(t, http.StatusCreated, do("10.0.0.2:1234"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:4321"
	assert.Equal(t, "203.0.113.9", middleware.ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.ClientIP(req))

	// X-Forwarded-For wins, first hop is the client.
	req.Header.Set("X-Forwarded-For", "192.0.2.1, 10.0.0.1")
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(req))
}
