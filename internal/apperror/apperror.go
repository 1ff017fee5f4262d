// Package apperror defines the typed application error carried from
// handlers and middleware to the terminal error responder.
//
// Every failure the API intentionally surfaces is an *Error holding the
// HTTP status, a stable machine-readable code, and optional structured
// details. Anything else reaching the responder is treated as unexpected
// and rendered as INTERNAL_ERROR without leaking internals.
package apperror

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned to clients.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeForbidden      = "FORBIDDEN"
	CodeRecipeNotFound = "RECIPE_NOT_FOUND"
	CodeRouteNotFound  = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// Error is a typed application error.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with an explicit status and code.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation reports malformed input. details maps each invalid field
// path to its violation messages.
func Validation(details map[string][]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Validation error",
		Details: details,
	}
}

// AuthRequired reports a missing authenticated identity.
func AuthRequired() *Error {
	return New(http.StatusUnauthorized, CodeAuthRequired, "Authentication required")
}

// Forbidden reports an authenticated identity that does not own the
// target resource.
func Forbidden() *Error {
	return New(http.StatusForbidden, CodeForbidden, "You do not own this recipe")
}

// RecipeNotFound reports a well-formed id with no matching record.
func RecipeNotFound() *Error {
	return New(http.StatusNotFound, CodeRecipeNotFound, "Recipe not found")
}

// RouteNotFound reports a request for which no route is registered.
func RouteNotFound(method, path string) *Error {
	return New(http.StatusNotFound, CodeRouteNotFound,
		fmt.Sprintf("Route %s %s not found", method, path))
}

// Internal wraps an unexpected failure. The message shown to clients is
// generic; the underlying error is only logged.
func Internal() *Error {
	return New(http.StatusInternalServerError, CodeInternal, "Internal Server Error")
}
