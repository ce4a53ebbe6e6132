package middleware

import (
	"log/slog"
	"net/http"

	"github.com/eventpass/attendance-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error that escapes a handler as an
// ErrorResponse. Server-side failures are logged with the request path and
// reported to the client as a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("unhandled request error",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"error", err,
		)
		msg = "internal server error"
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
