// README: Precise detour feasibility via a directions provider.
package carpool

import (
	"context"
	"time"
)

// Feasibility bounds: both must hold, with exclusive upper limits.
const (
	maxDetourDuration = 900 * time.Second // 15 min
	maxDetourMeters   = 8046              // 5 miles
)

// DirectionsProvider computes the direct driver→destination route and the
// waypoint-optimized driver→passenger→destination route. A nil provider
// means the precise detour check is skipped entirely.
type DirectionsProvider interface {
	RouteWithWaypoint(ctx context.Context, origin, waypoint, destination string) (RouteLegs, error)
}

// EvaluateDetour derives the detour from the two routes and applies the
// feasibility rule: detour duration under 15 minutes AND detour distance
// under 5 miles.
func EvaluateDetour(legs RouteLegs) DetourCheck {
	detourMeters := legs.WithWaypointMeters - legs.DirectMeters
	detourDuration := legs.WithWaypointDuration - legs.DirectDuration
	return DetourCheck{
		TotalDistanceMeters:  legs.WithWaypointMeters,
		TotalDuration:        legs.WithWaypointDuration,
		DetourDistanceMeters: detourMeters,
		DetourDuration:       detourDuration,
		Feasible:             detourDuration < maxDetourDuration && detourMeters < maxDetourMeters,
	}
}
