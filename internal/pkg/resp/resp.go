/*
Package resp writes the JSON responses the API returns.

Successful responses carry the payload directly; failures carry a single
{"error": "..."} body with the HTTP status taken from the error class.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/logx"
)

// errorBody is the uniform failure payload.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON marshals payload and sends it with the given HTTP status.
func WriteJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(body)
}

// WriteOK sends the payload with HTTP 200.
func WriteOK(w http.ResponseWriter, r *http.Request, payload any) {
	WriteJSON(w, r, http.StatusOK, payload)
}

// WriteCreated sends the payload with HTTP 201.
func WriteCreated(w http.ResponseWriter, r *http.Request, payload any) {
	WriteJSON(w, r, http.StatusCreated, payload)
}

// WriteError sends the client-safe message for customErr with its HTTP status.
func WriteError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	WriteJSON(w, r, customErr.Status, errorBody{Error: customErr.Message})
}
