package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cubfile/pkg/cub"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": APIError{
			Message: msg,
			Type:    errType,
		},
	})
}

// writeCubError maps the reader's error classes onto HTTP statuses.
// Structural problems in the file itself are the client's data, not a
// server fault, so they surface as 422.
func writeCubError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, cub.ErrInvalidFormat):
		return writeError(c, http.StatusUnprocessableEntity, "format_error", "not a cub file")
	case errors.Is(err, cub.ErrCorruptFile):
		return writeError(c, http.StatusUnprocessableEntity, "format_error", "corrupt cub file")
	case errors.Is(err, cub.ErrNotFound):
		return writeNotFound(c, "block not found")
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}

// RequestID tags every response with a generated request identifier.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			c.Response().Header().Set("X-Request-Id", uuid.NewString())
			return next(c)
		}
	}
}
