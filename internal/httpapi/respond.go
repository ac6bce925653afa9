package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// statusFromError maps service errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondWithServiceError keeps internal details out of 5xx bodies.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	code := statusFromError(err)

	var verr *validation.Error
	if errors.As(err, &verr) {
		RespondWithJSON(w, code, ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
		return
	}

	switch code {
	case http.StatusNotFound:
		RespondWithError(w, code, "Not found")
	case http.StatusConflict:
		RespondWithError(w, code, err.Error())
	case http.StatusUnauthorized:
		RespondWithError(w, code, "Unauthorized")
	case http.StatusServiceUnavailable:
		RespondWithError(w, code, "Service temporarily unavailable")
	default:
		RespondWithError(w, code, fallback)
	}
}
