package service

import (
	"fmt"
	"strings"

	"github.com/octobees/llm-maps/api/internal/apperr"
)

// City is a supported city and its "lat,lng" coordinate string.
type City struct {
	Name        string
	Coordinates string
}

var supportedCities = []City{
	{Name: "New York", Coordinates: "40.7128,-74.0060"},
	{Name: "Los Angeles", Coordinates: "34.0522,-118.2437"},
	{Name: "Chicago", Coordinates: "41.8781,-87.6298"},
	{Name: "Miami", Coordinates: "25.7617,-80.1918"},
	{Name: "London", Coordinates: "51.5074,-0.1278"},
	{Name: "Tokyo", Coordinates: "35.6762,139.6503"},
	{Name: "Paris", Coordinates: "48.8566,2.3522"},
	{Name: "Sydney", Coordinates: "-33.8688,151.2093"},
	{Name: "Bangkok", Coordinates: "13.7563,100.5018"},
	{Name: "Dubai", Coordinates: "25.2048,55.2708"},
	{Name: "Rome", Coordinates: "41.9028,12.4964"},
	{Name: "San Francisco", Coordinates: "37.7749,-122.4194"},
	{Name: "Seattle", Coordinates: "47.6062,-122.3321"},
	{Name: "Toronto", Coordinates: "43.6532,-79.3832"},
	{Name: "Berlin", Coordinates: "52.5200,13.4050"},
	{Name: "Amsterdam", Coordinates: "52.3676,4.9041"},
	{Name: "Singapore", Coordinates: "1.3521,103.8198"},
	{Name: "Hong Kong", Coordinates: "22.3193,114.1694"},
	{Name: "Shanghai", Coordinates: "31.2304,121.4737"},
}

// CityDirectory resolves city names from a fixed in-memory table.
type CityDirectory struct {
	cities []City
	index  map[string]string
}

// NewCityDirectory returns the directory of supported cities.
func NewCityDirectory() *CityDirectory {
	return newCityDirectory(supportedCities)
}

func newCityDirectory(cities []City) *CityDirectory {
	index := make(map[string]string, len(cities))
	for _, city := range cities {
		index[normalizeCity(city.Name)] = city.Coordinates
	}
	return &CityDirectory{cities: cities, index: index}
}

// Lookup returns the coordinates of name, matched case-insensitively.
func (d *CityDirectory) Lookup(name string) (string, error) {
	coords, ok := d.index[normalizeCity(name)]
	if !ok {
		return "", apperr.NotFound(fmt.Sprintf("Coordinates for %q are not available. Try one of the supported cities.", name))
	}
	return coords, nil
}

// Names lists the supported cities in display order.
func (d *CityDirectory) Names() []string {
	names := make([]string, len(d.cities))
	for i, city := range d.cities {
		names[i] = city.Name
	}
	return names
}

func normalizeCity(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
