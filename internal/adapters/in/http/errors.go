package http

import (
	"errors"
	"net/http"

	"optistore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps an application error to its HTTP status.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse builds the body for err. Internal errors are not described to
// the client and permission errors only say that the role is insufficient.
func errorResponse(err error) (int, Error) {
	code := statusCode(err)
	resp := Error{Code: code}

	switch code {
	case http.StatusInternalServerError:
		resp.Message = "Internal server error"
	case http.StatusUnauthorized:
		resp.Message = "Authentication required"
	case http.StatusForbidden:
		resp.Message = "Insufficient role"
	case http.StatusBadRequest:
		resp.Message = "Invalid data"
		resp.Details = joinedMessages(err)
	default:
		resp.Message = err.Error()
	}
	return code, resp
}

// joinedMessages lists the messages of an errors.Join result one by one.
func joinedMessages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, joinedMessages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

func (s *Server) fail(c echo.Context, err error) error {
	code, resp := errorResponse(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return c.JSON(code, resp)
}
