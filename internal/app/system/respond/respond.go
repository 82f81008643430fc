// Package respond writes the JSON envelopes used by every API handler.
//
// Success responses are the resource itself or an {"ok":true,...} envelope;
// error responses are {"error":"..."} with the appropriate 4xx/5xx status.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a bare {"ok":true} envelope.
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Error writes an {"error": msg} envelope with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// BadRequest writes a 400 validation error.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Unauthorized writes a 401 error.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "unauthorized")
}

// Forbidden writes a 403 error.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "forbidden")
}

// Internal writes a generic 500. Handlers log the underlying error; clients
// only see detail when the caller passes it explicitly (dev mode).
func Internal(w http.ResponseWriter, detail string) {
	msg := "internal server error"
	if detail != "" {
		msg = detail
	}
	Error(w, http.StatusInternalServerError, msg)
}
