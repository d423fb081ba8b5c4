package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"constituency_site/middleware"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks the shared view password and issues a session token.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if !gate.Authenticate(req.Password) {
		sendErrorResponse(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	token, expires := sessions.Issue()
	sendJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

// Logout revokes the current session token.
func Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		sessions.Revoke(token)
	}
	w.WriteHeader(http.StatusNoContent)
}
