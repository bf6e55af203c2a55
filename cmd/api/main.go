package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/cache"
	"github.com/octobees/llm-maps/api/internal/config"
	"github.com/octobees/llm-maps/api/internal/handler"
	"github.com/octobees/llm-maps/api/internal/logger"
	"github.com/octobees/llm-maps/api/internal/places"
	"github.com/octobees/llm-maps/api/internal/router"
	"github.com/octobees/llm-maps/api/internal/service"
)

const cacheSweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		env := "production"
		if cfg != nil {
			env = cfg.AppEnv
		}
		log := logger.New(env)
		if apperr.Is(err, apperr.KindConfiguration) {
			log.Error("GOOGLE_MAPS_API_KEY is required; add it to the environment or a .env file", "error", err)
		} else {
			log.Error("failed to load config", "error", err)
		}
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv)
	log.Info("configuration loaded",
		"port", cfg.Port,
		"app_env", cfg.AppEnv,
		"api_key_prefix", logger.MaskSecret(cfg.GoogleMapsAPIKey),
		"widget_key_required", cfg.FrontendAPIKey != "" && !cfg.IsDevelopment(),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	responseCache := cache.New(cfg.CacheTTL)
	go responseCache.Run(ctx, cacheSweepInterval)

	client := places.NewClient(cfg.GoogleMapsAPIKey,
		places.WithBaseURL(cfg.GoogleMapsBaseURL),
		places.WithTimeouts(cfg.SearchTimeout, cfg.DetailsTimeout),
	)
	mapsService := service.NewMapsService(
		cfg.GoogleMapsAPIKey,
		client,
		responseCache,
		service.NewContactNormalizer(cfg.PhoneRegion),
		log,
	)

	e := router.New(cfg, router.Handlers{
		Maps: handler.NewMapsHandler(mapsService, service.NewCityDirectory(), log),
		Ops:  handler.NewOpsHandler(cfg, responseCache),
	}, log)

	go func() {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.DetailsTimeout+time.Second)
		defer cancel()
		if mapsService.TestAPIKey(checkCtx) {
			log.Info("Google Maps API key verified")
		} else {
			log.Warn("Google Maps API key check failed; searches will return errors until it is fixed")
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", ":"+cfg.Port)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
