package http

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes bounds request bodies; a document of a few hundred blocks
// stays well below it.
const maxBodyBytes = 1 << 20

// WriteJSONError writes a JSON error response formatted as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSONBody decodes a size-limited request body into v
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
