// README: Trip and driver records handed to the optimization engine.
package trips

import (
	"time"

	"caravan/internal/modules/geo"
	"caravan/internal/types"
)

// Trip is the unit the sequencer reorders and the capacity grouper bins.
type Trip struct {
	ID             types.ID
	DriverID       *types.ID
	Pickup         geo.Location
	Dropoff        geo.Location
	PassengerCount int
	DesiredTime    time.Time
}

// StopRole marks whether a stop is a pickup or a dropoff.
type StopRole string

const (
	RolePickup  StopRole = "pickup"
	RoleDropoff StopRole = "dropoff"
)

// Stop is a point visited during a trip.
type Stop struct {
	TripID   types.ID
	Role     StopRole
	Location geo.Location
}

// Stops expands a trip into its pickup and dropoff stops, in visiting order.
func (t Trip) Stops() []Stop {
	return []Stop{
		{TripID: t.ID, Role: RolePickup, Location: t.Pickup},
		{TripID: t.ID, Role: RoleDropoff, Location: t.Dropoff},
	}
}

type Driver struct {
	ID              types.ID
	Name            string
	VehicleCapacity int
}
