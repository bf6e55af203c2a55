package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/dto"
)

func TestSuccess(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Success(c, 0, dto.CitiesResponse{Success: true, SupportedCities: []string{"Paris"}, Count: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload dto.CitiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Success || payload.Count != 1 {
		t.Fatalf("unexpected response: %+v", payload)
	}
}

func TestError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Error(c, 0, "boom", "details here"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected default status 500, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["success"] != false || payload["error"] != "boom" || payload["message"] != "details here" {
		t.Fatalf("unexpected response: %+v", payload)
	}
	if _, ok := payload["details"]; ok {
		t.Fatalf("expected empty details omitted, got %+v", payload)
	}
}

func TestAppError(t *testing.T) {
	tests := map[string]struct {
		err        error
		expectCode int
	}{
		"validation":   {err: apperr.Validation("Query parameter is required"), expectCode: http.StatusBadRequest},
		"not found":    {err: apperr.NotFound("Coordinates for \"x\" are not available."), expectCode: http.StatusNotFound},
		"unauthorized": {err: apperr.Unauthorized("API key required"), expectCode: http.StatusUnauthorized},
		"plain":        {err: errors.New("boom"), expectCode: http.StatusInternalServerError},
	}

	e := echo.New()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			if err := AppError(e.NewContext(req, rec), tt.err); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			var payload dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Success || payload.Error != tt.err.Error() {
				t.Fatalf("unexpected payload: %+v", payload)
			}
		})
	}
}

func TestTimestamp(t *testing.T) {
	ts := timestamp()
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("expected RFC3339 timestamp, got %q", ts)
	}
	if len(ts) != len("2024-05-01T12:00:00.000Z") {
		t.Fatalf("expected millisecond precision, got %q", ts)
	}
}
