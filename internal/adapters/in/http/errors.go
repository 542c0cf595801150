package http

import (
	"context"
	"errors"
	"net/http"

	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response outside the assign and
// cancel outcomes.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorKind names the class of err for clients and logs.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return "bad_request"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrPreconditionFailed):
		return "conflict"
	case errors.Is(err, errs.ErrTransientIO):
		return "unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}

// httpStatus maps err to the response status code.
func httpStatus(err error) int {
	switch errorKind(err) {
	case "":
		return http.StatusOK
	case "bad_request", "canceled":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	case "unavailable":
		return http.StatusServiceUnavailable
	case "timeout":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Internal errors are logged and their
// message replaced with fallback.
func (s *Server) fail(c echo.Context, err error, fallback string) error {
	status := httpStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), fallback,
			"path", c.Path(),
			"error", err,
		)
		message = fallback
	}
	return c.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    errorKind(err),
		Message: message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    "bad_request",
		Message: message,
	})
}
