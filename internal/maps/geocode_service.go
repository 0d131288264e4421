package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"caravan/internal/types"
)

// GeocodeService handles address resolution via the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
	region string
}

// NewGeocodeService creates a new GeocodeService with the given API key.
// region biases results (e.g. "UK").
func NewGeocodeService(apiKey, region string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, region: strings.ToLower(region)}, nil
}

// Geocode resolves a free-text query to coordinates using the first result.
func (s *GeocodeService) Geocode(ctx context.Context, query string) (types.Point, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: query,
		Region:  s.region,
	})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("no geocode results for %q", query)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
