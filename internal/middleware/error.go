package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/forkful/recipebook/internal/apperror"
)

// errorBody is the inner object of the uniform error envelope.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the uniform JSON error response shape.
type ErrorEnvelope struct {
	Error errorBody `json:"error"`
}

func envelope(appErr *apperror.Error) ErrorEnvelope {
	return ErrorEnvelope{Error: errorBody{
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}}
}

// ErrorResponder is the terminal error stage. Handlers and middleware
// attach failures with c.Error and abort; this middleware translates the
// last attached error into the uniform envelope. Recognized typed errors
// keep their status, code, message, and details verbatim; anything else
// becomes a generic 500 with no internal detail in the body. Every
// translated error is logged with method, path, and status.
func ErrorResponder(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal()
		}

		logger.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", appErr.Status).
			Str("error", err.Error()).
			Msg("request failed")

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.Status, envelope(appErr))
	}
}

// Recovery converts panics into the same 500 envelope the responder
// produces, logging the stack trace for operator diagnosis.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Int("status", http.StatusInternalServerError).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, envelope(apperror.Internal()))
			}
		}()
		c.Next()
	}
}

// NoRoute reports an undefined route through the error pipeline so the
// response uses the same envelope as every other failure.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperror.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	}
}
