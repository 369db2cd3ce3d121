package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "clario/backend/internal/errors"
)

// Shared response DTOs and helpers for the JSON API surface. The chat and
// video endpoints keep their own wire shapes (see their handlers); everything
// else goes through these.

// ErrorResponse is the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the generic success acknowledgement for mutations.
// Responses that carry a payload alongside the acknowledgement embed it.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithError maps sentinel errors to HTTP status codes and writes a
// standard JSON error body. The detailed error is logged; validation and
// configuration messages are passed through because they are already written
// for the client, everything else gets a generic message.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrConfig):
		statusCode = http.StatusInternalServerError
		message = err.Error()
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals a payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
