package endpoints

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/poseidoncap/refdata/pkg/validation"
)

// internalErrorMessage is the only detail returned to clients for
// unexpected failures. The cause is logged and audited server-side.
const internalErrorMessage = "an unexpected error occurred"

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithInternalError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	respondWithError(w, http.StatusInternalServerError, internalErrorMessage)
}

func respondWithValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
