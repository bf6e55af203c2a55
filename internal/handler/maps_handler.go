package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/dto"
	"github.com/octobees/llm-maps/api/internal/entity"
	"github.com/octobees/llm-maps/api/internal/logger"
	"github.com/octobees/llm-maps/api/internal/service"
)

// MapsService is the place lookup surface used by MapsHandler.
type MapsService interface {
	SearchPlaces(ctx context.Context, q service.SearchQuery) ([]entity.Place, error)
	GetPlaceDetails(ctx context.Context, placeID string) (entity.Place, error)
	StaticMapURL(center entity.LatLng, markers []entity.LatLng, zoom int) (string, bool)
	TestAPIKey(ctx context.Context) bool
}

// Geocoder resolves supported city names to coordinates.
type Geocoder interface {
	Lookup(name string) (string, error)
	Names() []string
}

// MapsHandler exposes the /api/maps endpoints.
type MapsHandler struct {
	maps   MapsService
	cities Geocoder
	log    *logger.Logger
}

// NewMapsHandler creates a new handler instance.
func NewMapsHandler(maps MapsService, cities Geocoder, log *logger.Logger) *MapsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &MapsHandler{maps: maps, cities: cities, log: log}
}

// Search handles POST /api/maps/search requests.
func (h *MapsHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return AppError(c, apperr.Validation("Invalid request payload"))
	}
	req.Query = strings.TrimSpace(req.Query)
	req.Location = strings.TrimSpace(req.Location)
	if err := c.Validate(&req); err != nil {
		return AppError(c, err)
	}

	ctx := c.Request().Context()
	places, err := h.maps.SearchPlaces(ctx, service.SearchQuery{
		Query:    req.Query,
		Location: req.Location,
		Radius:   req.Radius,
		Type:     req.Type,
	})
	if err != nil {
		h.log.WithContext(ctx).Error("search failed", "query", req.Query, "kind", apperr.KindOf(err).String(), "error", err)
		return ErrorBody(c, http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Search failed",
			Message: err.Error(),
			Details: "Check Google Maps API key and network connection",
		})
	}

	staticMapURL := h.staticMap(places)
	var mapURL string
	if staticMapURL != nil {
		mapURL = *staticMapURL
	}

	return Success(c, http.StatusOK, dto.SearchResponse{
		Success:      true,
		Query:        req.Query,
		Places:       places,
		LLMResponse:  service.FormatForDisplay(places, req.Query, mapURL),
		StaticMapURL: staticMapURL,
		TotalResults: len(places),
	})
}

// staticMap centers on the first place and marks every place with a known location.
// It returns nil when the first place has no geometry or no credential is set.
func (h *MapsHandler) staticMap(places []entity.Place) *string {
	if len(places) == 0 {
		return nil
	}
	center, ok := places[0].Location()
	if !ok {
		return nil
	}

	markers := make([]entity.LatLng, 0, len(places))
	for _, place := range places {
		if loc, ok := place.Location(); ok {
			markers = append(markers, loc)
		}
	}

	url, ok := h.maps.StaticMapURL(center, markers, service.DefaultZoom)
	if !ok {
		return nil
	}
	return &url
}

// PlaceDetails handles GET /api/maps/place/:placeId requests.
func (h *MapsHandler) PlaceDetails(c echo.Context) error {
	placeID := strings.TrimSpace(c.Param("placeId"))
	if placeID == "" {
		return AppError(c, apperr.Validation("placeId parameter is required"))
	}

	ctx := c.Request().Context()
	place, err := h.maps.GetPlaceDetails(ctx, placeID)
	if err != nil {
		h.log.WithContext(ctx).Error("place details failed", "place_id", placeID, "error", err)
		return Error(c, http.StatusInternalServerError, "Failed to get place details", err.Error())
	}

	return Success(c, http.StatusOK, dto.PlaceResponse{
		Success: true,
		Place:   place,
		MapsURL: service.MapsPlaceURL(placeID),
	})
}

// Geocode handles GET /api/maps/geocode?location= requests.
func (h *MapsHandler) Geocode(c echo.Context) error {
	location := c.QueryParam("location")
	if strings.TrimSpace(location) == "" {
		return AppError(c, apperr.Validation("Location parameter is required"))
	}

	coordinates, err := h.cities.Lookup(location)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Error(c, apperr.HTTPStatus(err), "Location not found in database", err.Error())
		}
		return Error(c, http.StatusInternalServerError, "Failed to get coordinates", err.Error())
	}

	return Success(c, http.StatusOK, dto.GeocodeResponse{
		Success:     true,
		Location:    location,
		Coordinates: coordinates,
	})
}

// SupportedCities handles GET /api/maps/supported-cities requests.
func (h *MapsHandler) SupportedCities(c echo.Context) error {
	names := h.cities.Names()
	return Success(c, http.StatusOK, dto.CitiesResponse{
		Success:         true,
		SupportedCities: names,
		Count:           len(names),
	})
}

// TestAPIKey handles GET /api/maps/test-api-key requests.
func (h *MapsHandler) TestAPIKey(c echo.Context) error {
	if !h.maps.TestAPIKey(c.Request().Context()) {
		return Error(c, http.StatusInternalServerError,
			"Google Maps API key is invalid or not working",
			"Please check your API key configuration in .env file")
	}

	return Success(c, http.StatusOK, dto.StatusResponse{
		Success:   true,
		Message:   "Google Maps API key is valid and working",
		Timestamp: timestamp(),
	})
}
