package response

import (
	"net/http"

	"github.com/goccy/go-json"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// ErrorBody tells clients which kind of failure happened.
type ErrorBody struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error kinds
const (
	KindValidation  = "validation"
	KindNotFound    = "not_found"
	KindWriteFailed = "write_failed"
	KindDataError   = "data_error"
	KindInternal    = "internal"
	KindRateLimited = "rate_limited"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, location string, message string, data interface{}) {
	w.Header().Set("Location", location)
	Success(w, http.StatusCreated, message, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

func ValidationError(w http.ResponseWriter, fields map[string]string) {
	Error(w, http.StatusBadRequest, "Validation failed", ErrorBody{Kind: KindValidation, Fields: fields})
}

func DataError(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message, ErrorBody{Kind: KindDataError})
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, ErrorBody{Kind: KindNotFound})
}

func WriteFailed(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message, ErrorBody{Kind: KindWriteFailed})
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, ErrorBody{Kind: KindInternal})
}

func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, message, ErrorBody{Kind: KindInternal})
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too many requests", ErrorBody{Kind: KindRateLimited})
}
