package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/apperr"
)

// HeaderAPIKey carries the shared secret sent by the browser widget.
const HeaderAPIKey = "X-Api-Key"

// APIKey enforces the shared-secret header. It is a no-op when permissive is true,
// and OPTIONS preflights always pass.
func APIKey(secret string, permissive bool) echo.MiddlewareFunc {
	expected := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if permissive || c.Request().Method == http.MethodOptions {
				return next(c)
			}

			provided := c.Request().Header.Get(HeaderAPIKey)
			if provided == "" || len(expected) == 0 || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				err := apperr.Unauthorized("API key required")
				return c.JSON(err.HTTPStatus(), map[string]any{
					"success": false,
					"error":   err.Message,
					"message": "Include x-api-key header",
				})
			}
			return next(c)
		}
	}
}
