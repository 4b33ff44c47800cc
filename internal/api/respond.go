package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/example/ec-shop/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]any{"code": status, "message": message})
}

// respondError maps a service error to an HTTP response. Internal
// causes are logged, never leaked.
func respondError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case apperr.KindBadRequest:
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[API] Internal error: %v", err)
		message := "Internal Server Error"
		var e *apperr.Error
		if errors.As(err, &e) {
			message = e.Message
		}
		respondJSONError(w, message, http.StatusInternalServerError)
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
