// README: Carpool compatibility candidates and detour shapes.
package carpool

import (
	"time"

	"caravan/internal/modules/trips"
)

// Candidate is a passenger trip scored for ride-sharing compatibility with a
// driver's existing trip. Reasoning carries one short human-readable string
// per evaluated signal for UI display.
type Candidate struct {
	Trip              trips.Trip
	Score             int
	Reasoning         []string
	DetourMinutes     *float64
	SharedDestination bool
}

// RouteLegs is the raw outcome of a directions provider comparing the direct
// driver route against the waypoint route via the passenger.
type RouteLegs struct {
	DirectMeters         int
	DirectDuration       time.Duration
	WithWaypointMeters   int
	WithWaypointDuration time.Duration
}

// DetourCheck is the evaluated detour. An absent check (provider
// unavailable) is a distinct state from an infeasible one.
type DetourCheck struct {
	TotalDistanceMeters  int
	TotalDuration        time.Duration
	DetourDistanceMeters int
	DetourDuration       time.Duration
	Feasible             bool
}
