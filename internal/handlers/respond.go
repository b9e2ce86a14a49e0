// Package handlers implements the HTTP API: the public news endpoints and
// the authenticated admin panel endpoints. All responses are JSON.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"khoborpress/internal/errs"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps a store error to its HTTP status and writes the
// detail message. Unclassified errors are logged and reported as 500
// without leaking internals.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalid):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrConflict):
		respondJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// respondMessage writes a simple {"message": ...} acknowledgment.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// decodeBody parses the request body into dst. A malformed body is a
// client error, reported as 422 by the caller through respondError.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Invalidf("malformed request body")
	}
	return nil
}

// notFound writes the standard 404 body.
func notFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}
