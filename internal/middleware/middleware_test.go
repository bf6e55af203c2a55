package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/config"
	"github.com/octobees/llm-maps/api/internal/logger"
)

func TestLoggingMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter("production", buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-123")

	err := Logging(log)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"request_id":"rid-123"`) {
		t.Fatalf("expected log output to contain request id, got %s", buf.String())
	}

	// ensure errors are propagated and logged
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-456")
	expected := errors.New("boom")
	err = Logging(log)(func(c echo.Context) error {
		return expected
	})(c)
	if !strings.Contains(buf.String(), "rid-456") {
		t.Fatalf("expected second log entry with new request id")
	}
	if !errors.Is(err, expected) {
		t.Fatalf("expected error to bubble up")
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitConfig{Requests: 1, Interval: time.Minute}, logger.Nop())
	mw := RateLimit(limiter)

	e := echo.New()
	nextCalls := 0
	next := func(c echo.Context) error {
		nextCalls++
		return c.NoContent(http.StatusOK)
	}

	call := func(method, remoteAddr string) int {
		req := httptest.NewRequest(method, "/api/maps/search", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		_ = mw(next)(e.NewContext(req, rec))
		return rec.Code
	}

	if code := call(http.MethodPost, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := call(http.MethodPost, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request rejected, got %d", code)
	}
	if code := call(http.MethodPost, "10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("expected another client to have its own bucket, got %d", code)
	}
	if code := call(http.MethodOptions, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("expected preflight to bypass limiter, got %d", code)
	}

	// zero config should behave as passthrough
	if NewIPRateLimiter(config.RateLimitConfig{}, nil) != nil {
		t.Fatalf("expected nil limiter for zero config")
	}
	mw = RateLimit(nil)
	for i := 0; i < 3; i++ {
		if code := call(http.MethodPost, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("expected passthrough when limiter disabled, got %d", code)
		}
	}
	if nextCalls != 6 {
		t.Fatalf("expected next handler to be invoked 6 times, got %d", nextCalls)
	}
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(config.RateLimitConfig{Requests: 2, Interval: time.Hour}, nil)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("expected request %d allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatalf("expected third request rejected")
	}
	limiter.Allow("10.0.0.2")
	if limiter.Len() != 2 {
		t.Fatalf("expected two tracked clients, got %d", limiter.Len())
	}

	now = now.Add(30 * time.Minute)
	limiter.Allow("10.0.0.2")
	if limiter.Len() != 2 {
		t.Fatalf("expected no eviction before the interval elapsed, got %d", limiter.Len())
	}

	now = now.Add(time.Hour)
	if !limiter.Allow("10.0.0.3") {
		t.Fatalf("expected new client allowed")
	}
	if limiter.Len() != 1 {
		t.Fatalf("expected idle clients evicted, got %d tracked", limiter.Len())
	}
	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("expected evicted client to start with a full bucket")
	}
}

func TestAPIKey(t *testing.T) {
	e := echo.New()

	tests := map[string]struct {
		secret     string
		permissive bool
		method     string
		header     string
		expectCode int
	}{
		"missing header":        {secret: "s3cret", method: http.MethodGet, expectCode: http.StatusUnauthorized},
		"wrong header":          {secret: "s3cret", method: http.MethodGet, header: "nope", expectCode: http.StatusUnauthorized},
		"no secret configured":  {method: http.MethodGet, header: "anything", expectCode: http.StatusUnauthorized},
		"valid header":          {secret: "s3cret", method: http.MethodGet, header: "s3cret", expectCode: http.StatusOK},
		"preflight":             {secret: "s3cret", method: http.MethodOptions, expectCode: http.StatusOK},
		"development permitted": {secret: "s3cret", permissive: true, method: http.MethodGet, expectCode: http.StatusOK},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/maps/supported-cities", nil)
			if tt.header != "" {
				req.Header.Set("x-api-key", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := APIKey(tt.secret, tt.permissive)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)
			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if tt.expectCode == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), "Include x-api-key header") {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestID()

	t.Run("reuse incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "incoming")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) != "incoming" {
				t.Fatalf("expected request id to be stored")
			}
			if c.Request().Context().Value(logger.RequestIDKey) != "incoming" {
				t.Fatalf("expected request id in request context")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get("X-Request-ID") != "incoming" {
			t.Fatalf("expected response header to propagate request id")
		}
	})

	t.Run("generate when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			rid := RequestIDFromContext(c)
			if rid == "" {
				t.Fatalf("expected generated request id")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("expected response header set")
		}
	})
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	e := echo.New()
	e.Use(OpenCORS(), SecurityHeaders())
	e.GET("/api/cors-test", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cors-test", nil)
	req.Header.Set(echo.HeaderOrigin, "https://chat.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Header().Get(echo.HeaderAccessControlAllowOrigin) != "*" {
		t.Fatalf("expected open CORS, got %q", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	}
	if rec.Header().Get(echo.HeaderReferrerPolicy) != ReferrerPolicy {
		t.Fatalf("expected referrer policy, got %q", rec.Header().Get(echo.HeaderReferrerPolicy))
	}
	if rec.Header().Get(echo.HeaderXFrameOptions) != "DENY" || rec.Header().Get(echo.HeaderXContentTypeOptions) != "nosniff" {
		t.Fatalf("expected security headers, got %v", rec.Header())
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/cors-test", nil)
	preflight.Header.Set(echo.HeaderOrigin, "https://chat.example.com")
	preflight.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, preflight)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight short-circuit, got %d", rec.Code)
	}
}
