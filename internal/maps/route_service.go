package maps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"caravan/internal/modules/carpool"
)

// RouteService handles directions requests against the Google Maps API.
type RouteService struct {
	client *maps.Client
	region string
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey, region string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, region: strings.ToLower(region)}, nil
}

// GetTravelEstimate returns the driving duration and distance in meters from
// origin to destination.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string) (time.Duration, int, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, 0, fmt.Errorf("no route found")
	}

	var dur time.Duration
	var meters int
	for _, leg := range routes[0].Legs {
		dur += leg.Duration
		meters += leg.Distance.Meters
	}
	return dur, meters, nil
}

// RouteWithWaypoint compares the direct origin→destination route against the
// waypoint route via the passenger pickup, letting the API optimize the
// waypoint order.
func (s *RouteService) RouteWithWaypoint(ctx context.Context, origin, waypoint, destination string) (carpool.RouteLegs, error) {
	directDur, directMeters, err := s.GetTravelEstimate(ctx, origin, destination)
	if err != nil {
		return carpool.RouteLegs{}, fmt.Errorf("direct route: %w", err)
	}

	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   []string{waypoint},
		Optimize:    true,
		Mode:        maps.TravelModeDriving,
		Region:      s.region,
	}
	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return carpool.RouteLegs{}, fmt.Errorf("waypoint route: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return carpool.RouteLegs{}, fmt.Errorf("no waypoint route found")
	}

	var dur time.Duration
	var meters int
	for _, leg := range routes[0].Legs {
		dur += leg.Duration
		meters += leg.Distance.Meters
	}

	return carpool.RouteLegs{
		DirectMeters:         directMeters,
		DirectDuration:       directDur,
		WithWaypointMeters:   meters,
		WithWaypointDuration: dur,
	}, nil
}
