package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/syedazoh/RAG-Chatbot/internal/api"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

var logH = logger_i.NewLogger("Handlers")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Code: httpCode, Message: message})
}
