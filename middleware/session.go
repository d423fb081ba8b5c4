package middleware

import (
	"net/http"
	"strings"

	"constituency_site/auth"
)

// RequireSession rejects requests that do not carry a live view session
// token. The token comes from the Authorization header ("Bearer <token>")
// or, for download links the shell cannot set headers on, the
// session_token query parameter.
func RequireSession(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("session_token")
			}

			if !sessions.Valid(token) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "Valid session required", "code": 401}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns the empty string.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
