package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Client-facing error messages.
const (
	ErrMsgInvalidRequest   = "Invalid request"
	ErrMsgInvalidQuery     = "Invalid query parameters"
	ErrMsgNotFound         = "Not found"
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInternalError    = "Something went wrong"
	ErrMsgMustBeNumber     = "Must be a number"
)

// HealthStatusOK is reported by /healthz.
const HealthStatusOK = "ok"

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists each rejected query parameter.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status string `json:"status"`
}

// respondJSON encodes payload before writing headers so an encoding
// failure can still produce a 500.
func respondJSON(w http.ResponseWriter, log *zap.Logger, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Error("encoding JSON response", zap.Error(err))
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgInternalError + `"}` + "\n"))
		return
	}
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("writing response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, log *zap.Logger, status int, message string) {
	respondJSON(w, log, status, ErrorResponse{Error: message})
}

func respondValidation(w http.ResponseWriter, log *zap.Logger, fields map[string]string) {
	respondJSON(w, log, http.StatusBadRequest, ValidationErrorResponse{Error: ErrMsgInvalidQuery, Fields: fields})
}
