package http

import (
	"errors"
	"log/slog"
	"net/http"

	"devis/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an error kind to an HTTP status.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidArgument:
		return http.StatusBadRequest
	case errs.KindInvalidState:
		return http.StatusConflict
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders errors as ErrorResponse. Internal errors are logged
// and answered with a generic message.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body ErrorResponse
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			body = ErrorResponse{Code: httpErr.Code, Message: httpMessage(httpErr)}
		} else {
			kind := errs.KindOf(err)
			body = ErrorResponse{Code: statusFor(kind), Kind: string(kind), Message: err.Error()}
			if kind == errs.KindInternal {
				logger.ErrorContext(c.Request().Context(), "unhandled error",
					"method", c.Request().Method, "path", c.Path(), "error", err)
				body.Message = http.StatusText(http.StatusInternalServerError)
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}
