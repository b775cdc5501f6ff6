package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// Error codes returned alongside the message.
const (
	codeValidation         = "VALIDATION_ERROR"
	codeUnauthorized       = "UNAUTHORIZED"
	codeTokenExpired       = "TOKEN_EXPIRED"
	codeInvalidToken       = "INVALID_TOKEN"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeNotFound           = "NOT_FOUND"
	codeConflict           = "CONFLICT"
	codeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	codeInternal           = "INTERNAL"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and code.
//   - Logs unexpected errors with the request id; the cause is only
//     echoed back in Detail when debug is set.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<CODE>"}.
func NewHTTPErrorHandler(log zerolog.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c)
		if status == http.StatusInternalServerError && debug {
			resp.Detail = err.Error()
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Code: httpCode(he.Code)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeValidation}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error(), Code: codeUnauthorized}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrTokenExpired.Error(), Code: codeTokenExpired}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrTokenInvalid.Error(), Code: codeInvalidToken}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error(), Code: codeInvalidCredentials}
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrNoteNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeNotFound}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: domain.ErrUserExists.Error(), Code: codeConflict}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorResponse{Error: domain.ErrTooManyAttempts.Error(), Code: codeTooManyAttempts}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: codeInternal}
}

// httpCode derives a code for errors raised by echo itself.
func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeValidation
	case http.StatusUnauthorized:
		return codeUnauthorized
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusConflict:
		return codeConflict
	case http.StatusTooManyRequests:
		return codeTooManyAttempts
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	}
	if status >= http.StatusInternalServerError {
		return codeInternal
	}
	return "HTTP_" + fmt.Sprint(status)
}
