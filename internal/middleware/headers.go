package middleware

import "net/http"

// Security header values applied to every response. Kept in one place so
// the served policy and the hosting documentation cannot drift apart.
const (
	contentSecurityPolicy = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'"
	strictTransportPolicy = "max-age=63072000; includeSubDomains"
	referrerPolicy        = "strict-origin-when-cross-origin"
)

// SecurityHeaders applies the response header policy to every response:
// CSP, HSTS, nosniff, and frame denial, plus permissive CORS for the
// prejoin API (the landing page may be opened from file:// during
// development).
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("Strict-Transport-Security", strictTransportPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", referrerPolicy)

		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
