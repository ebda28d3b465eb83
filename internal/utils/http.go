package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON responses are never cached: they carry account data and tokens.
const (
	contentTypeJSON = "application/json"
	cacheNoStore    = "no-store"
)

// WriteJSON marshals data and writes it with statusCode.
//
// Every response is marked "Cache-Control: no-store" and
// "X-Content-Type-Options: nosniff". When data cannot be marshaled a plain
// 500 is written instead and the marshal error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response body: %w", err)
	}

	header := w.Header()
	header.Set("Content-Type", contentTypeJSON)
	header.Set("Cache-Control", cacheNoStore)
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
