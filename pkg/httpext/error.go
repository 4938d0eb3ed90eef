package httpext

import (
	"encoding/json"
	"net/http"

	"github.com/deepgram/asklyn/pkg/logger"
)

// ErrorResponse is the body of every failed API call: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JsonError writes message as a JSON error body with the given status code.
func JsonError(w http.ResponseWriter, message string, code int) {
	JsonResponse(w, code, ErrorResponse{Error: message})
}

// JsonResponse encodes v as the response body with the given status code.
func JsonResponse(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out, so all that is left is to record it.
		logger.Error(logger.HANDLER, "Failed to encode response body: %v", err)
	}
}
