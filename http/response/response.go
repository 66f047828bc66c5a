package response

import (
	"encoding/json"
	"log"
	"net/http"

	"admission-portal/errors"
)

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse sends a success response with given status code, message, and data
func SuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	response := StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	SendJSON(w, statusCode, response)
}

// ErrorResponse sends an error response with given status code and error message
func ErrorResponse(w http.ResponseWriter, statusCode int, errorMsg string) {
	response := StandardResponse{
		Status: "error",
		Error:  errorMsg,
	}
	SendJSON(w, statusCode, response)
}

// FromError maps an application error kind to an HTTP status and sends it.
func FromError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError
	switch errors.KindOf(err) {
	case errors.Invalid:
		status = http.StatusBadRequest
	case errors.NotFound:
		status = http.StatusNotFound
	case errors.Conflict:
		status = http.StatusConflict
	case errors.Unauthorized:
		status = http.StatusUnauthorized
	case errors.Forbidden:
		status = http.StatusForbidden
	case errors.Gateway:
		status = http.StatusBadGateway
	case errors.Timeout:
		status = http.StatusGatewayTimeout
	case errors.Inconsistent:
		// Operator attention: the settlement was aborted whole.
		status = http.StatusConflict
	}
	ErrorResponse(w, status, message)
}

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
