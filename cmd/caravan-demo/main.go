// README: Offline demo; runs the optimization engine in fallback mode on sample trips.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"caravan/internal/modules/costs"
	"caravan/internal/modules/geo"
	"caravan/internal/modules/grouping"
	"caravan/internal/modules/routing"
	"caravan/internal/modules/trips"
	"caravan/internal/types"
)

func main() {
	ctx := context.Background()

	// No providers configured: everything runs on the local approximation.
	resolver := geo.NewService(nil, nil, types.Point{Lat: 53.7997, Lng: -1.5492}, "UK")
	estimator := costs.NewEstimator(nil, resolver)

	day := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	list := []trips.Trip{
		sampleTrip("t1", "12 Chapel Lane", "LS6 2AB", "St James Hospital", "LS9 7TF", 2, day),
		sampleTrip("t2", "4 Mill Road", "LS6 3CD", "Leeds General Infirmary", "LS1 3EX", 1, day.Add(20*time.Minute)),
		sampleTrip("t3", "88 Otley Road", "LS16 5JX", "St James Hospital", "LS9 7TF", 3, day.Add(45*time.Minute)),
		sampleTrip("t4", "2 Harehills Avenue", "LS8 4EU", "Seacroft Clinic", "LS14 6UH", 1, day.Add(90*time.Minute)),
	}

	m := routing.ChainMatrix(ctx, estimator, list)
	res, err := routing.Sequence(list, m)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("method=%s reliable=%v\n", res.Method, res.Reliable)
	if res.Warning != "" {
		fmt.Printf("warning: %s\n", res.Warning)
	}
	fmt.Printf("order before: %v\n", ids(res.OriginalOrder))
	fmt.Printf("order after:  %v\n", ids(res.OptimizedOrder))
	fmt.Printf("distance: %.2f mi -> %.2f mi (saved %.2f mi, ~%s)\n",
		res.TotalBeforeMiles, res.TotalAfterMiles, res.DistanceSavedMiles, res.TimeSavedEstimate)

	groups, err := grouping.GroupByCapacity(list, 4)
	if err != nil {
		log.Fatal(err)
	}
	for i, g := range groups {
		fmt.Printf("vehicle %d: trips=%v passengers=%d/%d (%.0f%%)\n",
			i+1, ids(g.Trips), g.TotalPassengers, g.VehicleCapacity, g.CapacityUsedPercent)
	}
}

func sampleTrip(id, pickupAddr, pickupPost, dropAddr, dropPost string, passengers int, at time.Time) trips.Trip {
	return trips.Trip{
		ID:             types.ID(id),
		Pickup:         geo.Location{AddressText: pickupAddr, PostalCode: pickupPost},
		Dropoff:        geo.Location{AddressText: dropAddr, PostalCode: dropPost},
		PassengerCount: passengers,
		DesiredTime:    at,
	}
}

func ids(list []trips.Trip) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = string(t.ID)
	}
	return out
}
