// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every API handler answers with JSON. Success bodies can be any shape;
// error bodies always use the Response envelope, so clients only need to
// understand one error format.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope returned for error cases:
//
//	{ "status": "error", "error": "field tz is required" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Envelope status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes data JSON-encoded with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the body for successful calls that return nothing else.
func OK() Response {
	return Response{Status: StatusOK}
}

// GeneralError wraps any Go error into the standard envelope. Validation
// failures use it too: their Error() already lists every rejected field.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}
