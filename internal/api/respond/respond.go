// Package respond maps service results and error kinds onto HTTP responses.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// Message is the body shape for non-entity responses.
type Message struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// StatusOf maps an error kind to an HTTP status code.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the caller-safe message for err. Internal causes are logged,
// never returned to the client.
func Error(w http.ResponseWriter, logger *logging.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "error", err)
	}
	JSON(w, status, Message{Message: apperr.MessageOf(err)})
}
