package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockdata/pkg/price"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// messageResponse is the body of a successful mutation.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps a price error to an HTTP status and client message.
func statusFor(err error) (int, errorResponse) {
	var verr *price.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorResponse{Error: verr.Error(), Missing: verr.Missing}
	case errors.Is(err, price.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "Data not found."}
	case errors.Is(err, price.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "Access denied. Invalid key."}
	case errors.Is(err, price.ErrMalformedDate), errors.Is(err, price.ErrMalformedPrice):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, price.ErrInsufficientData):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "storage unavailable"}
	}
}
