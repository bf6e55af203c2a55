package entity

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry holds the place location as returned by the provider.
type Geometry struct {
	Location LatLng `json:"location"`
}

// OpeningHours describes whether a place is currently open.
type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Photo references a provider-hosted photo.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

// Place is a place record sourced from the maps provider. Search results fill the
// basic fields; detail lookups add contact data, price level and photos.
type Place struct {
	PlaceID                  string        `json:"place_id"`
	Name                     string        `json:"name"`
	FormattedAddress         string        `json:"formatted_address,omitempty"`
	Geometry                 *Geometry     `json:"geometry,omitempty"`
	Rating                   *float64      `json:"rating,omitempty"`
	UserRatingsTotal         *int          `json:"user_ratings_total,omitempty"`
	OpeningHours             *OpeningHours `json:"opening_hours,omitempty"`
	BusinessStatus           string        `json:"business_status,omitempty"`
	Types                    []string      `json:"types,omitempty"`
	FormattedPhoneNumber     string        `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string        `json:"international_phone_number,omitempty"`
	Website                  string        `json:"website,omitempty"`
	PriceLevel               *int          `json:"price_level,omitempty"`
	Photos                   []Photo       `json:"photos,omitempty"`

	// Derived locally from the provider contact fields; provider fields stay as sent.
	PhoneE164     string `json:"phone_e164,omitempty"`
	WebsiteClean  string `json:"website_clean,omitempty"`
	WebsiteDomain string `json:"website_domain,omitempty"`
}

// Location returns the place coordinate and whether it is known.
func (p Place) Location() (LatLng, bool) {
	if p.Geometry == nil {
		return LatLng{}, false
	}
	return p.Geometry.Location, true
}
