package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/config"
	"github.com/octobees/llm-maps/api/internal/dto"
	"github.com/octobees/llm-maps/api/internal/logger"
	"github.com/octobees/llm-maps/api/internal/middleware"
)

const serviceName = "LLM Maps API"

// CacheStats reports the number of live cache entries.
type CacheStats interface {
	Len() int
}

// OpsHandler serves the health and diagnostics endpoints.
type OpsHandler struct {
	cfg   *config.Config
	cache CacheStats
}

// NewOpsHandler creates a new handler instance. cache may be nil.
func NewOpsHandler(cfg *config.Config, cache CacheStats) *OpsHandler {
	return &OpsHandler{cfg: cfg, cache: cache}
}

// Health handles GET /health requests.
func (h *OpsHandler) Health(c echo.Context) error {
	entries := 0
	if h.cache != nil {
		entries = h.cache.Len()
	}
	return Success(c, http.StatusOK, dto.HealthResponse{
		Success:      true,
		Status:       "OK",
		Timestamp:    timestamp(),
		Service:      serviceName,
		Port:         h.cfg.Port,
		APIKeyLoaded: h.cfg.GoogleMapsAPIKey != "",
		CacheEntries: entries,
	})
}

// CORSTest handles GET /api/cors-test requests.
func (h *OpsHandler) CORSTest(c echo.Context) error {
	return Success(c, http.StatusOK, dto.CORSTestResponse{
		Success:        true,
		Message:        "CORS is working",
		Origin:         c.Request().Header.Get(echo.HeaderOrigin),
		Timestamp:      timestamp(),
		ReferrerPolicy: middleware.ReferrerPolicy,
		APIKeyLoaded:   h.cfg.GoogleMapsAPIKey != "",
	})
}

// DebugEnv handles GET /api/debug-env requests. The key itself is never returned.
func (h *OpsHandler) DebugEnv(c echo.Context) error {
	key := h.cfg.GoogleMapsAPIKey
	return Success(c, http.StatusOK, dto.DebugEnvResponse{
		Success: true,
		GoogleMapsAPIKey: dto.KeyInfo{
			Loaded: key != "",
			Length: len(key),
			Prefix: logger.MaskSecret(key),
		},
		Port:      h.cfg.Port,
		AppEnv:    h.cfg.AppEnv,
		Timestamp: timestamp(),
	})
}
