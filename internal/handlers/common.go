package handlers

import (
	"encoding/json"
	"net/http"
)

const storageErrorMessage = "Service temporarily unavailable"

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
