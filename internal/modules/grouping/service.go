// README: Capacity grouper; first-fit bin packing of trips into vehicles.
package grouping

import (
	"errors"
	"sort"

	"caravan/internal/modules/trips"
)

var ErrBadCapacity = errors.New("vehicle capacity must be at least 1")

// Group is a vehicle-capacity-bounded cluster of trips. OverCapacity is set
// only for the unavoidable case of a single trip whose passenger count
// exceeds the vehicle capacity on its own.
type Group struct {
	Trips               []trips.Trip
	TotalPassengers     int
	VehicleCapacity     int
	CapacityUsedPercent float64
	OverCapacity        bool
}

// GroupByCapacity partitions trips into capacity-bounded groups. Trips are
// processed in pickup-time order (stable, so equal times keep input order)
// and placed first-fit: the first existing group with room takes the trip,
// otherwise a new group opens. An oversized trip becomes its own flagged
// group rather than silently dropping passengers.
func GroupByCapacity(list []trips.Trip, vehicleCapacity int) ([]Group, error) {
	if vehicleCapacity < 1 {
		return nil, ErrBadCapacity
	}

	ordered := make([]trips.Trip, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DesiredTime.Before(ordered[j].DesiredTime)
	})

	var groups []Group
	for _, t := range ordered {
		if t.PassengerCount > vehicleCapacity {
			groups = append(groups, newGroup(t, vehicleCapacity, true))
			continue
		}
		placed := false
		for i := range groups {
			if groups[i].OverCapacity {
				continue
			}
			if groups[i].TotalPassengers+t.PassengerCount <= vehicleCapacity {
				groups[i].Trips = append(groups[i].Trips, t)
				groups[i].TotalPassengers += t.PassengerCount
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, newGroup(t, vehicleCapacity, false))
		}
	}

	for i := range groups {
		groups[i].CapacityUsedPercent = float64(groups[i].TotalPassengers) / float64(vehicleCapacity) * 100
	}
	return groups, nil
}

func newGroup(t trips.Trip, capacity int, over bool) Group {
	return Group{
		Trips:           []trips.Trip{t},
		TotalPassengers: t.PassengerCount,
		VehicleCapacity: capacity,
		OverCapacity:    over,
	}
}
