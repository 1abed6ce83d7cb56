package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth guards admin endpoints with a single static Bearer token.
type AdminAuth struct {
	token string
}

// NewAdminAuth creates a new AdminAuth. An empty token disables admin
// access entirely: every request is rejected.
func NewAdminAuth(token string) *AdminAuth {
	return &AdminAuth{token: token}
}

// Authenticate validates the Bearer token before calling the next handler.
func (m *AdminAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.token == "" {
			http.Error(w, "admin access disabled", http.StatusUnauthorized)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
