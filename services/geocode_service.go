package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/osi-labs/shramsaathi-api/config"
)

// Bounding box covering India. Results outside it are discarded unless the
// geocoder reports the matching country code.
const (
	minLat = 6.0
	maxLat = 38.0
	minLon = 68.0
	maxLon = 98.0

	countryCode = "in"
)

// Coordinates is a resolved latitude/longitude pair
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text address to coordinates.
// Implementations return (nil, nil) when no acceptable result exists.
type Geocoder interface {
	Resolve(query string) (*Coordinates, error)
}

// GeocodeService resolves addresses through a Nominatim-style HTTP API,
// caching results per query string in a bounded LRU cache
type GeocodeService struct {
	baseURL    string
	httpClient *http.Client
	cache      *lru.Cache[string, Coordinates]
}

// geocodeResult is the subset of a Nominatim search result we care about.
// Nominatim serializes coordinates as strings.
type geocodeResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// NewGeocodeService creates a new geocode service instance
func NewGeocodeService(cfg *config.Config) (*GeocodeService, error) {
	cache, err := lru.New[string, Coordinates](cfg.GeocodeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode cache: %w", err)
	}

	return &GeocodeService{
		baseURL: strings.TrimRight(cfg.GeocoderBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}, nil
}

// Resolve looks up coordinates for a free-text address. A cached result is
// returned without a network call. Results outside the accepted region are
// discarded and (nil, nil) is returned.
func (s *GeocodeService) Resolve(query string) (*Coordinates, error) {
	if query == "" {
		return nil, nil
	}

	if coords, ok := s.cache.Get(query); ok {
		return &coords, nil
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&format=json&addressdetails=1&limit=1",
		s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim's usage policy requires an identifying user agent
	req.Header.Set("User-Agent", "shramsaathi-api/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned invalid latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned invalid longitude %q", results[0].Lon)
	}

	inBoundingBox := lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
	if !inBoundingBox && results[0].Address.CountryCode != countryCode {
		// First hit is outside the service area, discard it
		return nil, nil
	}

	coords := Coordinates{Lat: lat, Lon: lon}
	s.cache.Add(query, coords)
	return &coords, nil
}

// ComposeAddress builds the geocoder query from the optional address
// fragments of a job, skipping blank parts. Returns "" when nothing is set.
func ComposeAddress(area, colony, location, state string, pincode *int) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{area, colony, location, state} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if pincode != nil {
		parts = append(parts, strconv.Itoa(*pincode))
	}
	return strings.Join(parts, ", ")
}

var geocoder Geocoder

// GetGeocoder returns the global geocoder instance
func GetGeocoder() Geocoder {
	return geocoder
}

// SetGeocoder sets the global geocoder instance
func SetGeocoder(g Geocoder) {
	geocoder = g
}
