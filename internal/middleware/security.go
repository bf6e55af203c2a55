package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// ReferrerPolicy lets the static map and directions links keep their referrer on HTTPS pages.
const ReferrerPolicy = "no-referrer-when-downgrade"

// SecurityHeaders sets the relaxed header set the widget needs: no CSP, no HSTS.
func SecurityHeaders() echo.MiddlewareFunc {
	return echoMiddleware.SecureWithConfig(echoMiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     ReferrerPolicy,
	})
}

// OpenCORS allows every origin, method and header.
func OpenCORS() echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"*"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{"*"},
	})
}
