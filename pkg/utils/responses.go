package utils

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
	Code   string `json:"code"`
	Errors any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, Response{Status: true, Message: message, Data: data})
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, Response{Status: true, Message: message, Data: data})
}

// ------------- Error responses -------------

// ResponseError writes the {error, code} body with the given status.
func ResponseError(w http.ResponseWriter, status int, message, code string, details any) {
	ResponseJSON(w, status, ErrorResponse{
		Status: false,
		Error:  message,
		Code:   code,
		Errors: details,
	})
}

// ResponseAppError writes an *AppError using its own status and code.
func ResponseAppError(w http.ResponseWriter, err *AppError) {
	ResponseError(w, err.Status(), err.Message, err.Code, nil)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message, CodeUnauthorized, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message, CodeForbidden, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter) {
	ResponseError(w, http.StatusInternalServerError, "Internal server error", CodeInternalServerError, nil)
}
