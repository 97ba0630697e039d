package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps domain errors onto the HTTP error taxonomy. Messages
// stay generic on purpose; only validation errors echo their cause.
func WriteError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": ve.Message})
		return
	}

	switch {
	case errors.Is(err, ErrEmailInUse):
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized request, email is already in use!"})
	case errors.Is(err, ErrTokenExpired):
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "session expired!"})
	case errors.Is(err, ErrInvalidToken):
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized access!"})
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrMissingToken):
		WriteJSON(w, http.StatusForbidden, map[string]string{"message": "unauthorized request!"})
	case errors.Is(err, ErrUserNotFound):
		WriteJSON(w, http.StatusNotFound, map[string]string{"message": "account not found!"})
	default:
		slog.Error("request failed", slog.Any("error", err))
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "something went wrong!"})
	}
}
