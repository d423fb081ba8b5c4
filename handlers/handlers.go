package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"constituency_site/auth"
	"constituency_site/store"
)

const queryTimeout = 10 * time.Second

var (
	recordStore store.RecordStore
	sessions    *auth.SessionManager
	gate        auth.Gate
	logger      = zap.NewNop()
)

// Init wires the handler package. Call once from main before registering
// routes.
func Init(s store.RecordStore, g auth.Gate, sm *auth.SessionManager, l *zap.Logger) {
	recordStore = s
	gate = g
	sessions = sm
	if l != nil {
		logger = l
	}
}

// Sessions exposes the session manager for the route-level middleware.
func Sessions() *auth.SessionManager {
	return sessions
}

type healthResponse struct {
	Status      string `json:"status"`
	StoreStatus string `json:"store_status"`
	Error       string `json:"error,omitempty"`
}

// Health reports liveness and whether the record store is reachable,
// using the same gateway the persistence operations go through.
func Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := healthResponse{Status: "ok", StoreStatus: "connected"}
	if err := recordStore.Ping(ctx); err != nil {
		response.Status = "degraded"
		response.StoreStatus = "unavailable"
		response.Error = err.Error()
		sendJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	sendJSON(w, http.StatusOK, response)
}

func sendErrorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": message,
		"code":  code,
	})
}

func sendJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// sendStoreError maps the gateway's error taxonomy onto HTTP statuses so
// the shell can tell "store down" from "write failed" from "no results".
func sendStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrStoreUnavailable) {
		sendErrorResponse(w, "Record store is unavailable", http.StatusServiceUnavailable)
		return
	}
	sendErrorResponse(w, "Record store operation failed", http.StatusInternalServerError)
}
