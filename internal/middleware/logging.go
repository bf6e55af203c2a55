package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/logger"
)

// Logging writes one structured line for each HTTP request.
func Logging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			log.HTTPRequest(RequestIDFromContext(c), c.Request().Method, c.Request().URL.Path, c.Response().Status, latency, c.RealIP())

			return err
		}
	}
}
