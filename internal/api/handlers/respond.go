package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/models"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps the error taxonomy to HTTP statuses with a
// machine-readable kind and a human-readable message. Anything outside
// the taxonomy is logged and reported as a generic internal error.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{"validation", validationErr.Message})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{"unauthenticated", models.ErrInvalidCredentials.Error()})
	case errors.Is(err, models.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorBody{"unauthenticated", models.ErrUnauthenticated.Error()})
	case errors.Is(err, models.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{"forbidden", models.ErrForbidden.Error()})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{"not_found", models.ErrNotFound.Error()})
	case errors.Is(err, models.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorBody{"conflict", models.ErrDuplicateEmail.Error()})
	case errors.Is(err, models.ErrUpstream):
		writeJSON(w, http.StatusBadGateway, errorBody{"upstream_error", models.ErrUpstream.Error()})
	default:
		log.Error().Err(err).Msg("Unexpected internal error")
		writeJSON(w, http.StatusInternalServerError, errorBody{"internal", "internal server error"})
	}
}
