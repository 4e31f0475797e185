package response

import (
	"encoding/json"
	"net/http"

	"github.com/readmelens/readmelens/pkg/errors"
)

// ErrorResponse is the wire shape for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler is a custom type for http handlers that can return errors
type Handler func(w http.ResponseWriter, r *http.Request) error

// Middleware converts our custom handler to standard http.HandlerFunc
func Middleware(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err != nil {
			WriteError(w, err)
			return
		}
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response. Only the public message of the
// error reaches the client; internal detail stays server-side.
func WriteError(w http.ResponseWriter, err error) {
	var response ErrorResponse
	var statusCode int

	switch e := err.(type) {
	case *errors.AppError:
		response = ErrorResponse{Error: e.Message}

		// Map error types to HTTP status codes
		switch e.Type {
		case errors.ValidationError:
			statusCode = http.StatusBadRequest
		case errors.NotFoundError:
			statusCode = http.StatusNotFound
		case errors.RateLimitError:
			statusCode = http.StatusTooManyRequests
		default:
			// Upstream and internal failures collapse to a generic
			// message so no internal detail leaks.
			response = ErrorResponse{Error: "Internal Server Error"}
			statusCode = http.StatusInternalServerError
		}
	default:
		response = ErrorResponse{Error: "Internal Server Error"}
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
