package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/llm-maps/api/internal/config"
	"github.com/octobees/llm-maps/api/internal/handler"
	"github.com/octobees/llm-maps/api/internal/logger"
	middlewarepkg "github.com/octobees/llm-maps/api/internal/middleware"
	"github.com/octobees/llm-maps/api/internal/validator"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Maps *handler.MapsHandler
	Ops  *handler.OpsHandler
}

// New builds the echo instance with the shared middleware chain and all routes.
func New(cfg *config.Config, handlers Handlers, log *logger.Logger) *echo.Echo {
	if log == nil {
		log = logger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)
	e.IPExtractor = ipExtractor(cfg)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())
	e.Use(middlewarepkg.OpenCORS())
	e.Use(middlewarepkg.SecurityHeaders())
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))

	Register(e, cfg, handlers, middlewarepkg.NewIPRateLimiter(cfg.RateLimitAPI, log))
	return e
}

// ipExtractor reads the socket peer unless the service sits behind a trusted proxy,
// in which case X-Forwarded-For is honoured for hops from private ranges only.
func ipExtractor(cfg *config.Config) echo.IPExtractor {
	if cfg.TrustProxy {
		return echo.ExtractIPFromXFFHeader()
	}
	return echo.ExtractIPDirect()
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers, limiter *middlewarepkg.IPRateLimiter) {
	e.GET("/health", handlers.Ops.Health)

	api := e.Group("/api", middlewarepkg.RateLimit(limiter))
	api.GET("/cors-test", handlers.Ops.CORSTest)
	api.GET("/debug-env", handlers.Ops.DebugEnv)

	maps := api.Group("/maps", middlewarepkg.APIKey(cfg.FrontendAPIKey, cfg.IsDevelopment()))
	maps.GET("/test-api-key", handlers.Maps.TestAPIKey)
	maps.POST("/search", handlers.Maps.Search)
	maps.GET("/place/:placeId", handlers.Maps.PlaceDetails)
	maps.GET("/geocode", handlers.Maps.Geocode)
	maps.GET("/supported-cities", handlers.Maps.SupportedCities)
}
