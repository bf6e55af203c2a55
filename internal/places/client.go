// Package places talks to the Google Maps Places web service.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/entity"
)

const (
	DefaultBaseURL        = "https://maps.googleapis.com/maps/api"
	DefaultSearchTimeout  = 15 * time.Second
	DefaultDetailsTimeout = 10 * time.Second

	textSearchPath = "/place/textsearch/json"
	detailsPath    = "/place/details/json"
)

// DetailFields is the field subset requested from the details endpoint.
var DetailFields = []string{
	"name",
	"formatted_address",
	"geometry",
	"rating",
	"opening_hours",
	"photos",
	"website",
	"formatted_phone_number",
	"international_phone_number",
	"price_level",
}

// TextSearchParams are the inputs of a text search.
type TextSearchParams struct {
	Query    string
	Location string
	Radius   int
	Type     string
}

// TextSearchResponse is a decoded text search answer.
type TextSearchResponse struct {
	Result
	Places []entity.Place
}

// DetailsResponse is a decoded details answer.
type DetailsResponse struct {
	Result
	Place entity.Place
}

type textSearchPayload struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []entity.Place `json:"results"`
}

type detailsPayload struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       entity.Place `json:"result"`
}

// Client issues requests to the provider. Every method returns transport failures as
// *apperr.Error values; provider-level answers are reported through Result.
type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	searchTimeout  time.Duration
	detailsTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeouts overrides the per-call deadlines. Non-positive values keep the defaults.
func WithTimeouts(search, details time.Duration) Option {
	return func(c *Client) {
		if search > 0 {
			c.searchTimeout = search
		}
		if details > 0 {
			c.detailsTimeout = details
		}
	}
}

// NewClient builds a provider client for apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		apiKey:         apiKey,
		httpClient:     &http.Client{},
		searchTimeout:  DefaultSearchTimeout,
		detailsTimeout: DefaultDetailsTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TextSearch runs a text search.
func (c *Client) TextSearch(ctx context.Context, params TextSearchParams) (TextSearchResponse, error) {
	return c.textSearch(ctx, params, c.searchTimeout)
}

// Probe runs a cheap text search used to confirm the credential works.
func (c *Client) Probe(ctx context.Context) (Result, error) {
	resp, err := c.textSearch(ctx, TextSearchParams{Query: "New York", Radius: 1000}, c.detailsTimeout)
	return resp.Result, err
}

func (c *Client) textSearch(ctx context.Context, params TextSearchParams, timeout time.Duration) (TextSearchResponse, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("query", params.Query)
	query.Set("radius", strconv.Itoa(params.Radius))
	if params.Location != "" {
		query.Set("location", params.Location)
	}
	if params.Type != "" {
		query.Set("type", params.Type)
	}

	var payload textSearchPayload
	if err := c.get(ctx, textSearchPath, query, timeout, &payload); err != nil {
		return TextSearchResponse{}, err
	}
	return TextSearchResponse{
		Result: decodeResult(payload.Status, payload.ErrorMessage),
		Places: payload.Results,
	}, nil
}

// Details fetches DetailFields for one place.
func (c *Client) Details(ctx context.Context, placeID string) (DetailsResponse, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("place_id", placeID)
	query.Set("fields", strings.Join(DetailFields, ","))

	var payload detailsPayload
	if err := c.get(ctx, detailsPath, query, c.detailsTimeout, &payload); err != nil {
		return DetailsResponse{}, err
	}
	return DetailsResponse{
		Result: decodeResult(payload.Status, payload.ErrorMessage),
		Place:  payload.Result,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return apperr.Fetch(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return upstreamHTTPError(err)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Fetch(fmt.Errorf("decode provider response: %w", err))
	}
	return nil
}

func classifyTransportError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperr.Network("Network error: Cannot connect to Google Maps API", err)
	}
	return apperr.Network("No response from Google Maps API - check network connection", err)
}

// upstreamHTTPError turns a non-2xx provider response into a provider error. The
// Places endpoints answer with {"status", "error_message"} rather than the
// {"error": {...}} shape googleapi understands, so both are tried.
func upstreamHTTPError(err error) error {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return apperr.Fetch(err)
	}

	code := ""
	message := gErr.Message
	if message == "" && gErr.Body != "" {
		var body struct {
			Status       string `json:"status"`
			ErrorMessage string `json:"error_message"`
		}
		if json.Unmarshal([]byte(gErr.Body), &body) == nil {
			code = body.Status
			message = body.ErrorMessage
		}
	}
	if message == "" {
		message = "Unknown error"
	}

	return apperr.Provider(code, gErr.Code, fmt.Sprintf("Google API error: %d - %s", gErr.Code, message))
}
