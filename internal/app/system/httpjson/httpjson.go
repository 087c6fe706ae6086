// Package httpjson holds the JSON response envelope shared by every handler.
// Success payloads are rendered as-is; failures use a small error envelope so
// clients can switch on status without parsing prose.
package httpjson

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// OK writes 200 with v as the body.
func OK(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, v)
}

// Created writes 201 with v as the body.
func Created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}

// Error writes the given status with a one-line error message.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Status: "Error", Error: msg})
}

// ValidationError writes 400 naming the first offending field. Field-level
// detail beyond the first failure rarely helps API clients and bloats logs.
func ValidationError(w http.ResponseWriter, r *http.Request, err error) {
	msg := "invalid request body"
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			msg = "field " + fe.Field() + " is required"
		case "email":
			msg = "field " + fe.Field() + " must be a valid email"
		default:
			msg = "field " + fe.Field() + " is invalid"
		}
	}
	Error(w, r, http.StatusBadRequest, msg)
}
