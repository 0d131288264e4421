// README: Greedy nearest-neighbor trip sequencer.
package routing

import (
	"context"
	"fmt"
	"math"
	"time"

	"caravan/internal/modules/costs"
	"caravan/internal/modules/geo"
	"caravan/internal/modules/trips"
)

// fallbackMinutesPerMile converts saved distance into a time estimate when
// the cost matrix carries no provider durations.
const fallbackMinutesPerMile = 2

// Result reports the sequencing outcome. DistanceSaved is usually
// non-negative thanks to the greedy property, but no hard invariant is
// enforced against degenerate fallback costs.
type Result struct {
	OriginalOrder      []trips.Trip
	OptimizedOrder     []trips.Trip
	Stops              []trips.Stop
	TotalBeforeMiles   float64
	TotalAfterMiles    float64
	DistanceSavedMiles float64
	TimeSavedEstimate  time.Duration
	Method             geo.Method
	Reliable           bool
	Warning            string
}

// ChainMatrix builds the cost matrix the sequencer consumes: entry (i, j) is
// the travel cost from trip i's dropoff to trip j's pickup, so costs chain
// end-to-end through a driver's day.
func ChainMatrix(ctx context.Context, estimator *costs.Estimator, list []trips.Trip) *costs.Matrix {
	origins := make([]geo.Location, len(list))
	destinations := make([]geo.Location, len(list))
	for i, t := range list {
		origins[i] = t.Dropoff
		destinations[i] = t.Pickup
	}
	return estimator.EstimateMatrix(ctx, origins, destinations)
}

// Sequence orders trips with a greedy nearest-neighbor walk over the chained
// cost matrix. The first trip stays pinned at position 0 and ties always go
// to the earliest input index, so output is fully deterministic for a fixed
// input order and matrix. This is an O(n²) heuristic, not an optimal tour.
func Sequence(list []trips.Trip, m *costs.Matrix) (*Result, error) {
	n := len(list)
	if n > 1 {
		if len(m.Cells) != n {
			return nil, fmt.Errorf("cost matrix has %d rows, want %d", len(m.Cells), n)
		}
		for i, row := range m.Cells {
			if len(row) != n {
				return nil, fmt.Errorf("cost matrix row %d has %d cells, want %d", i, len(row), n)
			}
		}
	}

	res := &Result{
		OriginalOrder: list,
		Method:        m.Method,
		Reliable:      m.Reliable,
		Warning:       m.Warning,
	}

	if n <= 1 {
		res.OptimizedOrder = list
		res.Stops = expandStops(list)
		return res, nil
	}

	order := make([]int, 0, n)
	visited := make([]bool, n)
	order = append(order, 0)
	visited[0] = true
	current := 0

	for len(order) < n {
		next := -1
		best := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			// Strict less-than keeps the earliest index on ties.
			if c := edgeCost(m, current, j); c < best {
				best = c
				next = j
			}
		}
		if next == -1 {
			// Every remaining edge has unknown cost; fall back to input order.
			for j := 0; j < n; j++ {
				if !visited[j] {
					next = j
					break
				}
			}
		}
		order = append(order, next)
		visited[next] = true
		current = next
	}

	optimized := make([]trips.Trip, n)
	for i, idx := range order {
		optimized[i] = list[idx]
	}
	res.OptimizedOrder = optimized
	res.Stops = expandStops(optimized)

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	var durBefore, durAfter time.Duration
	res.TotalBeforeMiles, durBefore = pathTotals(m, identity)
	res.TotalAfterMiles, durAfter = pathTotals(m, order)
	res.DistanceSavedMiles = res.TotalBeforeMiles - res.TotalAfterMiles

	if m.Method == geo.MethodProvider {
		res.TimeSavedEstimate = durBefore - durAfter
	} else {
		res.TimeSavedEstimate = time.Duration(res.DistanceSavedMiles*fallbackMinutesPerMile) * time.Minute
	}

	return res, nil
}

// edgeCost returns the selection cost of moving from trip i to trip j.
// Unknown cells are treated as maximally expensive so a failed provider
// lookup never looks artificially attractive.
func edgeCost(m *costs.Matrix, i, j int) float64 {
	c := m.Cost(i, j)
	if c.Unknown {
		return math.Inf(1)
	}
	return c.DistanceMiles
}

// pathTotals sums consecutive costs along a visiting order. Unknown cells
// contribute their stored zero cost.
func pathTotals(m *costs.Matrix, order []int) (float64, time.Duration) {
	var miles float64
	var dur time.Duration
	for i := 0; i < len(order)-1; i++ {
		c := m.Cost(order[i], order[i+1])
		miles += c.DistanceMiles
		dur += c.Duration
	}
	return miles, dur
}

func expandStops(list []trips.Trip) []trips.Stop {
	stops := make([]trips.Stop, 0, 2*len(list))
	for _, t := range list {
		stops = append(stops, t.Stops()...)
	}
	return stops
}
