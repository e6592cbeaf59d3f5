package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/satheeshds/buildledger/internal/auth"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
	"github.com/satheeshds/buildledger/storage"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler serves the API over one ledger service and attachment store.
type Handler struct {
	Ledger         *ledger.Service
	Files          *storage.Service
	MaxUploadBytes int64
	// Ping checks the backing store for /healthz. Nil reports healthy.
	Ping func(ctx context.Context) error
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Error: msg})
}

// writeLedgerError maps ledger and store errors onto HTTP statuses. Unexpected errors
// are logged and reported without detail.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidState), errors.Is(err, models.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrQuotaExceeded):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request timed out")
	default:
		log := logger.WithContext(r.Context())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeAuthError answers requests whose bearer token was missing or rejected.
func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="buildledger"`)
	writeError(w, http.StatusUnauthorized, "unauthorized: "+err.Error())
}

// decodeJSON reads the request body into v, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// actor returns the caller injected by the auth middleware.
func actor(r *http.Request) ledger.Actor {
	s, _ := auth.FromContext(r.Context())
	return s.Actor()
}
