package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/cache"
	"github.com/octobees/llm-maps/api/internal/entity"
	"github.com/octobees/llm-maps/api/internal/logger"
	"github.com/octobees/llm-maps/api/internal/places"
)

const (
	// MaxSearchResults caps how many search results are kept per query.
	MaxSearchResults = 5
	// DefaultRadius is the search radius in meters when the caller sends none.
	DefaultRadius = 5000

	searchKeyPrefix  = "search"
	detailsKeyPrefix = "details:"
)

// PlacesProvider is the subset of the provider client used by MapsService.
type PlacesProvider interface {
	TextSearch(ctx context.Context, params places.TextSearchParams) (places.TextSearchResponse, error)
	Details(ctx context.Context, placeID string) (places.DetailsResponse, error)
	Probe(ctx context.Context) (places.Result, error)
}

// SearchQuery holds the inputs of a place search.
type SearchQuery struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	Radius   int    `json:"radius"`
	Type     string `json:"type"`
}

// MapsService composes the provider client, the response cache and the contact
// normalizer. It is built once at startup and shared by every handler.
type MapsService struct {
	apiKey   string
	provider PlacesProvider
	cache    *cache.Cache
	contacts *ContactNormalizer
	log      *logger.Logger
}

// NewMapsService wires the service. A nil cache gets a default one-hour cache and a
// nil logger discards output.
func NewMapsService(apiKey string, provider PlacesProvider, c *cache.Cache, contacts *ContactNormalizer, log *logger.Logger) *MapsService {
	if c == nil {
		c = cache.New(cache.DefaultTTL)
	}
	if contacts == nil {
		contacts = NewContactNormalizer("")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MapsService{
		apiKey:   apiKey,
		provider: provider,
		cache:    c,
		contacts: contacts,
		log:      log,
	}
}

// HasCredential reports whether a provider API key is configured.
func (s *MapsService) HasCredential() bool {
	return s.apiKey != ""
}

// SearchKey derives the cache key for q. Radius defaults are applied first so an
// omitted radius and an explicit 5000 share an entry.
func SearchKey(q SearchQuery) string {
	if q.Radius <= 0 {
		q.Radius = DefaultRadius
	}
	return cache.Key(searchKeyPrefix, q)
}

// DetailsKey derives the cache key for a place detail lookup.
func DetailsKey(placeID string) string {
	return detailsKeyPrefix + placeID
}

// SearchPlaces returns at most MaxSearchResults places for q, serving repeated
// queries from the cache until they expire.
func (s *MapsService) SearchPlaces(ctx context.Context, q SearchQuery) ([]entity.Place, error) {
	if !s.HasCredential() {
		return nil, apperr.Configuration("No API key available for Google Maps API")
	}
	if q.Radius <= 0 {
		q.Radius = DefaultRadius
	}

	log := s.log.WithContext(ctx)
	key := SearchKey(q)
	if cached, ok := s.cache.Get(key); ok {
		if result, ok := cached.([]entity.Place); ok {
			log.CacheHit(key)
			return result, nil
		}
	}

	start := time.Now()
	resp, err := s.provider.TextSearch(ctx, places.TextSearchParams{
		Query:    q.Query,
		Location: q.Location,
		Radius:   q.Radius,
		Type:     q.Type,
	})
	if err != nil {
		log.Error("place search failed", "query", q.Query, "error", err)
		return nil, err
	}
	log.ProviderCall("textsearch", resp.Outcome.String(), len(resp.Places), time.Since(start))

	switch resp.Outcome {
	case places.OutcomeSuccess:
		result := resp.Places
		if len(result) > MaxSearchResults {
			result = result[:MaxSearchResults:MaxSearchResults]
		}
		if result == nil {
			result = []entity.Place{}
		}
		s.cache.Set(key, result)
		return result, nil
	case places.OutcomeNoResults:
		result := []entity.Place{}
		s.cache.Set(key, result)
		return result, nil
	default:
		log.Warn("provider rejected search", "code", resp.Code, "message", resp.Message)
		return nil, apperr.Provider(resp.Code, 0, fmt.Sprintf("Google Places API error: %s", resp.Describe()))
	}
}

// GetPlaceDetails returns the extended record for placeID. Every failure other than a
// missing credential is reported as a detail fetch error.
func (s *MapsService) GetPlaceDetails(ctx context.Context, placeID string) (entity.Place, error) {
	if !s.HasCredential() {
		return entity.Place{}, apperr.Configuration("No API key available for Google Maps API")
	}

	log := s.log.WithContext(ctx)
	key := DetailsKey(placeID)
	if cached, ok := s.cache.Get(key); ok {
		if place, ok := cached.(entity.Place); ok {
			log.CacheHit(key)
			return place, nil
		}
	}

	start := time.Now()
	resp, err := s.provider.Details(ctx, placeID)
	if err != nil {
		log.Error("place details failed", "place_id", placeID, "error", err)
		return entity.Place{}, apperr.DetailFetch(err)
	}
	log.ProviderCall("details", resp.Outcome.String(), 1, time.Since(start))

	if resp.Outcome != places.OutcomeSuccess {
		cause := fmt.Errorf("places details status %s", resp.Code)
		log.Warn("provider rejected details", "place_id", placeID, "code", resp.Code)
		return entity.Place{}, apperr.DetailFetch(cause)
	}

	place := s.contacts.Apply(resp.Place)
	if place.PlaceID == "" {
		place.PlaceID = placeID
	}
	s.cache.Set(key, place)
	return place, nil
}

// TestAPIKey runs one uncached search against the provider and reports whether the
// credential is accepted.
func (s *MapsService) TestAPIKey(ctx context.Context) bool {
	log := s.log.WithContext(ctx)
	if !s.HasCredential() {
		log.Error("no API key available for testing")
		return false
	}

	result, err := s.provider.Probe(ctx)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			log.Error("API key test failed", "kind", appErr.Kind.String(), "error", appErr.Message)
		} else {
			log.Error("API key test failed", "error", err)
		}
		return false
	}
	if !result.OK() {
		log.Warn("API key rejected", "code", result.Code, "message", result.Message)
		return false
	}
	return true
}

// StaticMapURL builds a static map image URL centered on center with one marker per
// entry. It returns false when no credential is configured.
func (s *MapsService) StaticMapURL(center entity.LatLng, markers []entity.LatLng, zoom int) (string, bool) {
	if !s.HasCredential() {
		s.log.Error("no API key available for static map generation")
		return "", false
	}
	return BuildStaticMapURL(s.apiKey, center, markers, zoom), true
}
