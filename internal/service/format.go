package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/octobees/llm-maps/api/internal/entity"
)

const (
	staticMapBaseURL = "https://maps.googleapis.com/maps/api/staticmap"
	staticMapSize    = "600x300"
	// DefaultZoom is the static map zoom level used for search results.
	DefaultZoom = 14

	directionsOrigin = "Current Location"
)

// MapsPlaceURL links to the provider's page for placeID.
func MapsPlaceURL(placeID string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + placeID
}

// DirectionsURL links to driving directions between origin and destination.
func DirectionsURL(origin, destination string) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&origin=%s&destination=%s&travelmode=driving",
		encodeComponent(origin), encodeComponent(destination))
}

// BuildStaticMapURL renders a static map URL. The first marker is red and labeled
// "S"; the others are blue and numbered from 2.
func BuildStaticMapURL(apiKey string, center entity.LatLng, markers []entity.LatLng, zoom int) string {
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s?center=%s&zoom=%d&size=%s&key=%s",
		staticMapBaseURL, formatLatLng(center), zoom, staticMapSize, apiKey)

	for i, marker := range markers {
		color, label := "blue", strconv.Itoa(i+1)
		if i == 0 {
			color, label = "red", "S"
		}
		fmt.Fprintf(&b, "&markers=color:%s%%7Clabel:%s%%7C%s", color, label, formatLatLng(marker))
	}
	return b.String()
}

// FormatForDisplay renders places as a numbered Markdown list for chat display.
// An empty list yields a single sentence and ignores staticMapURL.
func FormatForDisplay(places []entity.Place, query, staticMapURL string) string {
	if len(places) == 0 {
		return fmt.Sprintf("No places found for \"%s\". Try a different search term or location.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found these places for \"%s\":\n\n", query)

	for i, place := range places {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, place.Name)
		fmt.Fprintf(&b, "📍 %s\n", orDefault(place.FormattedAddress, "Address not available"))
		fmt.Fprintf(&b, "⭐ Rating: %s\n", formatRating(place.Rating))

		if place.OpeningHours != nil {
			status := "🔴 Closed Now"
			if place.OpeningHours.OpenNow {
				status = "🟢 Open Now"
			}
			fmt.Fprintf(&b, "⏰ %s\n", status)
		}

		destination := place.FormattedAddress
		if destination == "" {
			destination = place.Name
		}
		fmt.Fprintf(&b, "🗺️ [View on Maps](%s)\n", MapsPlaceURL(place.PlaceID))
		fmt.Fprintf(&b, "🚗 [Get Directions](%s)\n\n", DirectionsURL(directionsOrigin, destination))
	}

	if staticMapURL != "" {
		fmt.Fprintf(&b, "\n![Location Map](%s)", staticMapURL)
	}
	return b.String()
}

func formatRating(rating *float64) string {
	if rating == nil || *rating == 0 {
		return "No rating"
	}
	return strconv.FormatFloat(*rating, 'f', -1, 64)
}

func formatLatLng(p entity.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// componentUnescaper restores the characters a browser leaves alone in a URI
// component but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s for use as a query value, with spaces as %20 and
// !'()* kept literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
