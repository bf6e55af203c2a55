package service

import (
	"strings"
	"testing"

	"github.com/octobees/llm-maps/api/internal/entity"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatForDisplay_Empty(t *testing.T) {
	want := `No places found for "sushi in atlantis". Try a different search term or location.`

	if got := FormatForDisplay(nil, "sushi in atlantis", ""); got != want {
		t.Fatalf("unexpected text: %q", got)
	}
	if got := FormatForDisplay([]entity.Place{}, "sushi in atlantis", "https://maps.example/static.png"); got != want {
		t.Fatalf("expected map url ignored for empty results, got %q", got)
	}
}

func TestFormatForDisplay_List(t *testing.T) {
	places := []entity.Place{
		{
			PlaceID:          "p1",
			Name:             "Joe's Pizza",
			FormattedAddress: "7 Carmine St, New York, NY 10014",
			Rating:           floatPtr(4.5),
			OpeningHours:     &entity.OpeningHours{OpenNow: true},
		},
		{
			PlaceID:      "p2",
			Name:         "Nameless Slice",
			OpeningHours: &entity.OpeningHours{OpenNow: false},
		},
		{
			PlaceID:          "p3",
			Name:             "Unknown Hours",
			FormattedAddress: "1 Main St",
			Rating:           floatPtr(4),
		},
	}

	got := FormatForDisplay(places, "pizza", "https://maps.googleapis.com/maps/api/staticmap?center=1,2")

	want := "I found these places for \"pizza\":\n\n" +
		"**1. Joe's Pizza**\n" +
		"📍 7 Carmine St, New York, NY 10014\n" +
		"⭐ Rating: 4.5\n" +
		"⏰ 🟢 Open Now\n" +
		"🗺️ [View on Maps](https://www.google.com/maps/place/?q=place_id:p1)\n" +
		"🚗 [Get Directions](https://www.google.com/maps/dir/?api=1&origin=Current%20Location&destination=7%20Carmine%20St%2C%20New%20York%2C%20NY%2010014&travelmode=driving)\n\n" +
		"**2. Nameless Slice**\n" +
		"📍 Address not available\n" +
		"⭐ Rating: No rating\n" +
		"⏰ 🔴 Closed Now\n" +
		"🗺️ [View on Maps](https://www.google.com/maps/place/?q=place_id:p2)\n" +
		"🚗 [Get Directions](https://www.google.com/maps/dir/?api=1&origin=Current%20Location&destination=Nameless%20Slice&travelmode=driving)\n\n" +
		"**3. Unknown Hours**\n" +
		"📍 1 Main St\n" +
		"⭐ Rating: 4\n" +
		"🗺️ [View on Maps](https://www.google.com/maps/place/?q=place_id:p3)\n" +
		"🚗 [Get Directions](https://www.google.com/maps/dir/?api=1&origin=Current%20Location&destination=1%20Main%20St&travelmode=driving)\n\n" +
		"\n![Location Map](https://maps.googleapis.com/maps/api/staticmap?center=1,2)"

	if got != want {
		t.Fatalf("unexpected text:\n%s\n--- want ---\n%s", got, want)
	}

	if again := FormatForDisplay(places, "pizza", "https://maps.googleapis.com/maps/api/staticmap?center=1,2"); again != got {
		t.Fatalf("expected deterministic output")
	}
}

func TestFormatForDisplay_NoMapURL(t *testing.T) {
	got := FormatForDisplay([]entity.Place{{PlaceID: "p1", Name: "A"}}, "a", "")
	if strings.Contains(got, "Location Map") {
		t.Fatalf("expected no map image without url, got %q", got)
	}
	if strings.Count(got, "**1. A**") != 1 {
		t.Fatalf("expected single entry, got %q", got)
	}
}

func TestBuildStaticMapURL(t *testing.T) {
	center := entity.LatLng{Lat: 40.7128, Lng: -74.006}
	markers := []entity.LatLng{
		{Lat: 40.7128, Lng: -74.006},
		{Lat: 40.73, Lng: -73.99},
		{Lat: 40.75, Lng: -73.98},
	}

	got := BuildStaticMapURL("KEY", center, markers, 0)
	want := "https://maps.googleapis.com/maps/api/staticmap?center=40.7128,-74.006&zoom=14&size=600x300&key=KEY" +
		"&markers=color:red%7Clabel:S%7C40.7128,-74.006" +
		"&markers=color:blue%7Clabel:2%7C40.73,-73.99" +
		"&markers=color:blue%7Clabel:3%7C40.75,-73.98"
	if got != want {
		t.Fatalf("unexpected url:\n%s\nwant\n%s", got, want)
	}

	if got := BuildStaticMapURL("KEY", center, nil, 10); got != "https://maps.googleapis.com/maps/api/staticmap?center=40.7128,-74.006&zoom=10&size=600x300&key=KEY" {
		t.Fatalf("unexpected url without markers: %s", got)
	}
}

func TestStaticMapURL_RequiresCredential(t *testing.T) {
	svc := NewMapsService("", &fakeProvider{}, nil, nil, nil)
	if url, ok := svc.StaticMapURL(entity.LatLng{Lat: 1, Lng: 2}, nil, DefaultZoom); ok || url != "" {
		t.Fatalf("expected absent url without credential, got %q", url)
	}

	svc = NewMapsService("KEY", &fakeProvider{}, nil, nil, nil)
	url, ok := svc.StaticMapURL(entity.LatLng{Lat: 1, Lng: 2}, []entity.LatLng{{Lat: 1, Lng: 2}}, DefaultZoom)
	if !ok || !strings.Contains(url, "key=KEY") || !strings.Contains(url, "label:S") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestDirectionsURL(t *testing.T) {
	got := DirectionsURL("Current Location", "Café & Bar, 5th Ave")
	want := "https://www.google.com/maps/dir/?api=1&origin=Current%20Location&destination=Caf%C3%A9%20%26%20Bar%2C%205th%20Ave&travelmode=driving"
	if got != want {
		t.Fatalf("unexpected url %s", got)
	}

	tests := map[string]string{
		"Joe's (Original) Pizza!": "Joe's%20(Original)%20Pizza!",
		"Bar * Grill":             "Bar%20*%20Grill",
		"1+1 Diner/Cafe?":         "1%2B1%20Diner%2FCafe%3F",
		"~tilde_dash-dot.":        "~tilde_dash-dot.",
	}
	for input, escaped := range tests {
		if got := encodeComponent(input); got != escaped {
			t.Fatalf("encodeComponent(%q): expected %q, got %q", input, escaped, got)
		}
	}
}
