// Package httpjson provides JSON response helpers for handlers. It contains
// no business logic; its one opinion is that domain errors are rendered from
// their Kind and everything untyped collapses to a 500 with a generic body.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"orgvault/internal/app/system/apperr"

	"go.uber.org/zap"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Respond writes payload as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error renders err as a JSON error response. Typed domain errors map to
// their HTTP status and expose only their message; anything else is logged
// and rendered as an opaque 500 so internal details never reach the wire.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		if e.Kind == apperr.KindInternal || e.Kind == apperr.KindUnavailable {
			log.Error("request failed", zap.Error(err))
		}
		Respond(w, e.HTTPStatus(), ErrorResponse{Error: e.Message})
		return
	}

	log.Error("request failed with untyped error", zap.Error(err))
	Respond(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
