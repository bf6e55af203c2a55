package dto

import "github.com/octobees/llm-maps/api/internal/entity"

// SearchRequest is the payload of POST /api/maps/search.
type SearchRequest struct {
	Query    string `json:"query" validate:"required"`
	Location string `json:"location,omitempty" validate:"omitempty,latlng"`
	Radius   int    `json:"radius,omitempty" validate:"omitempty,min=1"`
	Type     string `json:"type,omitempty" validate:"omitempty,max=64"`
}

// SearchResponse carries the places together with their chat rendering.
type SearchResponse struct {
	Success      bool           `json:"success"`
	Query        string         `json:"query"`
	Places       []entity.Place `json:"places"`
	LLMResponse  string         `json:"llm_response"`
	StaticMapURL *string        `json:"static_map_url"`
	TotalResults int            `json:"total_results"`
}

// PlaceResponse is returned by GET /api/maps/place/:placeId.
type PlaceResponse struct {
	Success bool         `json:"success"`
	Place   entity.Place `json:"place"`
	MapsURL string       `json:"maps_url"`
}

// GeocodeResponse is returned by GET /api/maps/geocode.
type GeocodeResponse struct {
	Success     bool   `json:"success"`
	Location    string `json:"location"`
	Coordinates string `json:"coordinates"`
}

// CitiesResponse lists the cities the geocoder knows.
type CitiesResponse struct {
	Success         bool     `json:"success"`
	SupportedCities []string `json:"supported_cities"`
	Count           int      `json:"count"`
}

// StatusResponse is a generic success/failure message with a timestamp.
type StatusResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
	Path    string `json:"path,omitempty"`
	Method  string `json:"method,omitempty"`
}
