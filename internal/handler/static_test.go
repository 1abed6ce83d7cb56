package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexa-app/vexa-web/internal/handler"
	"github.com/vexa-app/vexa-web/internal/static"
)

// newStaticHandler builds a route table without a database; none of the
// static routes touch the pool.
func newStaticHandler(t *testing.T) http.Handler {
	t.Helper()

	h := handler.New(nil, handler.Config{
		SignupRPS:   1,
		SignupBurst: 1,
	})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h.Middleware(mux)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestIndexPage(t *testing.T) {
	h := newStaticHandler(t)

	w := get(t, h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Vexa")
}

func TestAssetRoundTrip(t *testing.T) {
	h := newStaticHandler(t)

	want, err := static.FS.ReadFile("assets/logo.svg")
	require.NoError(t, err)

	w := get(t, h, "/assets/logo.svg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Type"), "image/svg+xml")
}

func TestMissingAssetReturns404(t *testing.T) {
	h := newStaticHandler(t)

	w := get(t, h, "/assets/does-not-exist.png")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownPathReturns404(t *testing.T) {
	h := newStaticHandler(t)

	w := get(t, h, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	h := newStaticHandler(t)

	for _, path := range []string{"/", "/assets/logo.svg", "/no-such-page"} {
		w := get(t, h, path)
		headers := w.Header()
		assert.NotEmpty(t, headers.Get("Content-Security-Policy"), path)
		assert.NotEmpty(t, headers.Get("Strict-Transport-Security"), path)
		assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"), path)
		assert.Equal(t, "DENY", headers.Get("X-Frame-Options"), path)
	}
}

func TestPreflightRequest(t *testing.T) {
	h := newStaticHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/prejoin", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST"))
}
