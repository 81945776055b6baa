// Package httputil centralizes the JSON envelope and domain-error
// translation so every endpoint responds with the same shape:
//
//	{"success": true, ...}
//	{"success": false, "error": "...", "details": [...]}
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "drivergate/pkg/domain-errors"
)

// Envelope is the uniform response body. Endpoint-specific fields ride
// in Data or Message.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the failure envelope. The
// coded message is client-safe by contract, even on internal failures
// ("Failed to generate driver ID"); only the wrapped cause stays in the
// server log. Uncoded errors get a generic message.
func WriteError(w http.ResponseWriter, err error) {
	env := Envelope{Success: false, Error: "Internal server error"}
	var de *dErrors.Error
	if errors.As(err, &de) {
		env.Error = de.Message
		env.Details = de.Details
	}

	WriteJSON(w, statusFor(dErrors.CodeOf(err)), env)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
