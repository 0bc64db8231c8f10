package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes data as the JSON body of a response with the given
// status. It returns the number of body bytes written.
//
// The document is marshaled before anything is written, so a marshaling
// failure still leaves the response untouched for the caller's error path.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
