package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Place is one result from the places provider.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	OpeningHours     *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
	Types []string `json:"types"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceDetails is the detail record for a single place.
type PlaceDetails struct {
	PlaceID                  string   `json:"place_id"`
	Name                     string   `json:"name"`
	FormattedAddress         string   `json:"formatted_address"`
	FormattedPhoneNumber     string   `json:"formatted_phone_number"`
	InternationalPhoneNumber string   `json:"international_phone_number"`
	Website                  string   `json:"website"`
	Geometry                 Geometry `json:"geometry"`
	Rating                   float64  `json:"rating"`
	UserRatingsTotal         int      `json:"user_ratings_total"`
	Types                    []string `json:"types"`
	OpeningHours             *struct {
		OpenNow     bool     `json:"open_now"`
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
}

// PlacesClient is the interface to the external places provider.
type PlacesClient interface {
	NearbySearch(ctx context.Context, lat, lng float64, radius int, placeType, keyword string) ([]Place, error)
	TextSearch(ctx context.Context, query string, lat, lng float64, radius int) ([]Place, error)
	Details(ctx context.Context, placeID string) (*PlaceDetails, error)
}

type placesResponse struct {
	Results      []Place `json:"results"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
}

type placeDetailsResponse struct {
	Result       *PlaceDetails `json:"result"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
}

// GooglePlacesClient talks to the Google Places REST API.
type GooglePlacesClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGooglePlacesClient(apiKey string) *GooglePlacesClient {
	return &GooglePlacesClient{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/place",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *GooglePlacesClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/json?%s", c.baseURL, path, params.Encode()), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}

func (c *GooglePlacesClient) NearbySearch(ctx context.Context, lat, lng float64, radius int, placeType, keyword string) ([]Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", strconv.Itoa(radius))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	var out placesResponse
	if err := c.get(ctx, "nearbysearch", params, &out); err != nil {
		return nil, err
	}
	return results(out)
}

func (c *GooglePlacesClient) TextSearch(ctx context.Context, query string, lat, lng float64, radius int) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)
	if lat != 0 || lng != 0 {
		params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
		params.Set("radius", strconv.Itoa(radius))
	}

	var out placesResponse
	if err := c.get(ctx, "textsearch", params, &out); err != nil {
		return nil, err
	}
	return results(out)
}

func (c *GooglePlacesClient) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,formatted_phone_number,international_phone_number,website,opening_hours,geometry,rating,user_ratings_total,types")

	var out placeDetailsResponse
	if err := c.get(ctx, "details", params, &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" {
		return nil, fmt.Errorf("places details: %s: %s", out.Status, out.ErrorMessage)
	}
	return out.Result, nil
}

// results normalizes the provider status: OK and ZERO_RESULTS succeed,
// everything else is a provider error.
func results(out placesResponse) ([]Place, error) {
	switch out.Status {
	case "OK":
		return out.Results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("places search: %s: %s", out.Status, out.ErrorMessage)
	}
}
