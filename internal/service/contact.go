package service

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/llm-maps/api/internal/entity"
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
)

var idnaProfile = idna.Lookup

// ContactNormalizer derives canonical contact fields for place details.
type ContactNormalizer struct {
	DefaultRegion string
}

// NewContactNormalizer builds a normalizer. Numbers without a country prefix are
// parsed in defaultRegion.
func NewContactNormalizer(defaultRegion string) *ContactNormalizer {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactNormalizer{DefaultRegion: region}
}

// Apply returns a copy of place with PhoneE164, WebsiteClean and WebsiteDomain filled
// in. The provider fields are left untouched.
func (n *ContactNormalizer) Apply(place entity.Place) entity.Place {
	phone := normalizePhone(place.InternationalPhoneNumber, n.DefaultRegion)
	if phone == "" {
		phone = normalizePhone(place.FormattedPhoneNumber, n.DefaultRegion)
	}
	place.PhoneE164 = phone

	if website, domain, ok := normalizeWebsite(place.Website); ok {
		place.WebsiteClean = website
		place.WebsiteDomain = domain
	}
	return place
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// normalizeWebsite strips utm_* parameters and returns the ASCII (punycode) host.
func normalizeWebsite(raw string) (string, string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	host := strings.ToLower(strings.Trim(u.Hostname(), "."))
	asciiHost, err := idnaProfile.ToASCII(host)
	if err != nil || asciiHost == "" {
		return "", "", false
	}
	stripTracking(u)
	return u.String(), strings.TrimPrefix(asciiHost, "www."), true
}

func stripTracking(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}
