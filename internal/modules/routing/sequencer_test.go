package routing

import (
	"context"
	"math"
	"testing"
	"time"

	"caravan/internal/modules/costs"
	"caravan/internal/modules/geo"
	"caravan/internal/modules/trips"
	"caravan/internal/types"
)

func tripList(ids ...string) []trips.Trip {
	out := make([]trips.Trip, len(ids))
	for i, id := range ids {
		out[i] = trips.Trip{
			ID:             types.ID(id),
			Pickup:         geo.Location{AddressText: "pickup " + id},
			Dropoff:        geo.Location{AddressText: "dropoff " + id},
			PassengerCount: 1,
		}
	}
	return out
}

func milesMatrix(rows [][]float64) *costs.Matrix {
	cells := make([][]costs.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]costs.Cell, len(row))
		for j, miles := range row {
			cells[i][j] = costs.Cell{DistanceMiles: miles}
		}
	}
	return &costs.Matrix{Cells: cells, Method: geo.MethodLocal, Warning: costs.WarningLocalMatrix}
}

func order(res *Result) []types.ID {
	ids := make([]types.ID, len(res.OptimizedOrder))
	for i, t := range res.OptimizedOrder {
		ids[i] = t.ID
	}
	return ids
}

func TestSequence_EmptyAndSingle(t *testing.T) {
	for _, list := range [][]trips.Trip{nil, tripList("only")} {
		res, err := Sequence(list, &costs.Matrix{Method: geo.MethodLocal})
		if err != nil {
			t.Fatalf("Sequence() error = %v", err)
		}
		if len(res.OptimizedOrder) != len(list) {
			t.Errorf("got %d trips, want %d", len(res.OptimizedOrder), len(list))
		}
		if res.DistanceSavedMiles != 0 {
			t.Errorf("trivial input saved %f miles, want 0", res.DistanceSavedMiles)
		}
		if len(res.Stops) != 2*len(list) {
			t.Errorf("got %d stops, want %d", len(res.Stops), 2*len(list))
		}
	}
}

func TestSequence_FirstTripPinned(t *testing.T) {
	// Trip 0 is the most expensive start, but must stay first.
	list := tripList("a", "b", "c")
	m := milesMatrix([][]float64{
		{0, 50, 60},
		{1, 0, 2},
		{1, 2, 0},
	})

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	if got := order(res); got[0] != "a" {
		t.Errorf("first trip not pinned: order = %v", got)
	}
}

func TestSequence_GreedyNearestNeighbor(t *testing.T) {
	// From a, c (cost 2) beats b (cost 5); from c, b is all that remains.
	list := tripList("a", "b", "c")
	m := milesMatrix([][]float64{
		{0, 5, 2},
		{5, 0, 3},
		{2, 3, 0},
	})

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	want := []types.ID{"a", "c", "b"}
	got := order(res)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	// Before: 0->1->2 = 5+3 = 8. After: 0->2->1 = 2+3 = 5.
	if math.Abs(res.TotalBeforeMiles-8) > 1e-9 || math.Abs(res.TotalAfterMiles-5) > 1e-9 {
		t.Errorf("totals = %f/%f, want 8/5", res.TotalBeforeMiles, res.TotalAfterMiles)
	}
	if math.Abs(res.DistanceSavedMiles-3) > 1e-9 {
		t.Errorf("saved = %f, want 3", res.DistanceSavedMiles)
	}
}

func TestSequence_TiesFavorEarliestIndex(t *testing.T) {
	list := tripList("a", "b", "c", "d")
	m := milesMatrix([][]float64{
		{0, 4, 4, 4},
		{4, 0, 4, 4},
		{4, 4, 0, 4},
		{4, 4, 4, 0},
	})

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	want := []types.ID{"a", "b", "c", "d"}
	got := order(res)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie-break order = %v, want input order %v", got, want)
		}
	}
}

func TestSequence_Deterministic(t *testing.T) {
	list := tripList("a", "b", "c", "d")
	m := milesMatrix([][]float64{
		{0, 7, 3, 9},
		{7, 0, 4, 2},
		{3, 4, 0, 6},
		{9, 2, 6, 0},
	})

	first, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Sequence(list, m)
		if err != nil {
			t.Fatalf("Sequence() error = %v", err)
		}
		for j := range first.OptimizedOrder {
			if first.OptimizedOrder[j].ID != again.OptimizedOrder[j].ID {
				t.Fatalf("run %d produced a different order", i)
			}
		}
	}
}

func TestSequence_UnknownEdgesAvoided(t *testing.T) {
	// The unknown edge a->b carries zero stored cost; greedy selection must
	// still prefer the known edge a->c.
	list := tripList("a", "b", "c")
	m := milesMatrix([][]float64{
		{0, 0, 10},
		{0, 0, 1},
		{10, 1, 0},
	})
	m.Cells[0][1].Unknown = true

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	if got := order(res); got[1] != "c" {
		t.Errorf("unknown edge was chosen over a known one: order = %v", got)
	}
}

func TestSequence_AllUnknownFallsBackToInputOrder(t *testing.T) {
	list := tripList("a", "b", "c")
	m := milesMatrix([][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	for i := range m.Cells {
		for j := range m.Cells[i] {
			if i != j {
				m.Cells[i][j].Unknown = true
			}
		}
	}

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	want := []types.ID{"a", "b", "c"}
	got := order(res)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want input order %v", got, want)
		}
	}
}

func TestSequence_DimensionMismatch(t *testing.T) {
	list := tripList("a", "b", "c")
	m := milesMatrix([][]float64{{0, 1}, {1, 0}})

	if _, err := Sequence(list, m); err == nil {
		t.Error("expected an error for a mismatched matrix, got nil")
	}
}

func TestSequence_FallbackTimeEstimate(t *testing.T) {
	list := tripList("a", "b", "c")
	m := milesMatrix([][]float64{
		{0, 5, 2},
		{5, 0, 3},
		{2, 3, 0},
	})

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	// 3 miles saved at 2 minutes per mile.
	if res.TimeSavedEstimate != 6*time.Minute {
		t.Errorf("time saved = %v, want 6m", res.TimeSavedEstimate)
	}
	if res.Method != geo.MethodLocal || res.Warning == "" {
		t.Errorf("fallback provenance not propagated: method=%q warning=%q", res.Method, res.Warning)
	}
}

func TestSequence_ProviderDurations(t *testing.T) {
	list := tripList("a", "b", "c")
	m := &costs.Matrix{
		Cells: [][]costs.Cell{
			{{}, {DistanceMiles: 5, Duration: 20 * time.Minute}, {DistanceMiles: 2, Duration: 8 * time.Minute}},
			{{DistanceMiles: 5, Duration: 20 * time.Minute}, {}, {DistanceMiles: 3, Duration: 12 * time.Minute}},
			{{DistanceMiles: 2, Duration: 8 * time.Minute}, {DistanceMiles: 3, Duration: 12 * time.Minute}, {}},
		},
		Method:   geo.MethodProvider,
		Reliable: true,
	}

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	// Before: 20m+12m = 32m. After (a,c,b): 8m+12m = 20m.
	if res.TimeSavedEstimate != 12*time.Minute {
		t.Errorf("time saved = %v, want 12m", res.TimeSavedEstimate)
	}
}

func TestSequence_StopsAlternateDropoffAfterPickup(t *testing.T) {
	list := tripList("a", "b")
	m := milesMatrix([][]float64{{0, 1}, {1, 0}})

	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	if len(res.Stops) != 4 {
		t.Fatalf("got %d stops, want 4", len(res.Stops))
	}
	for i := 0; i < len(res.Stops); i += 2 {
		if res.Stops[i].Role != trips.RolePickup || res.Stops[i+1].Role != trips.RoleDropoff {
			t.Errorf("stops %d/%d roles = %q/%q, want pickup then dropoff", i, i+1, res.Stops[i].Role, res.Stops[i+1].Role)
		}
		if res.Stops[i].TripID != res.Stops[i+1].TripID {
			t.Errorf("stops %d/%d belong to different trips", i, i+1)
		}
	}
}

// TestSequence_SquareOfCoordinates drives real coordinates through the
// estimator into the sequencer: four trips on the corners of a roughly
// one-mile square, booked in a zig-zag order. The optimized tour must walk
// the perimeter and come out strictly shorter.
func TestSequence_SquareOfCoordinates(t *testing.T) {
	resolver := geo.NewService(nil, nil, types.Point{Lat: 53.7997, Lng: -1.5492}, "UK")
	estimator := costs.NewEstimator(nil, resolver)

	// Corners of a ~1 mile square near Leeds. Each trip starts and ends at
	// its corner so the chained matrix is the plain corner-to-corner distance.
	corner := func(id string, lat, lng float64) trips.Trip {
		p := types.Point{Lat: lat, Lng: lng}
		return trips.Trip{
			ID:             types.ID(id),
			Pickup:         geo.Location{AddressText: "corner " + id, Position: &p},
			Dropoff:        geo.Location{AddressText: "corner " + id, Position: &p},
			PassengerCount: 1,
		}
	}
	// Booked order hops both diagonals: a -> c -> b -> d.
	list := []trips.Trip{
		corner("a", 53.8000, -1.5500),
		corner("c", 53.8145, -1.5255),
		corner("b", 53.8145, -1.5500),
		corner("d", 53.8000, -1.5255),
	}

	m := ChainMatrix(context.Background(), estimator, list)
	res, err := Sequence(list, m)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}

	// Two diagonals plus a side vs the perimeter walk.
	if math.Abs(res.TotalBeforeMiles-3.83) > 0.1 {
		t.Errorf("TotalBeforeMiles = %f, want ~3.83", res.TotalBeforeMiles)
	}
	if math.Abs(res.TotalAfterMiles-3.0) > 0.1 {
		t.Errorf("TotalAfterMiles = %f, want ~3.0", res.TotalAfterMiles)
	}
	if res.TotalAfterMiles >= res.TotalBeforeMiles {
		t.Errorf("optimized tour not shorter: before %f, after %f", res.TotalBeforeMiles, res.TotalAfterMiles)
	}
	if res.DistanceSavedMiles <= 0 {
		t.Errorf("DistanceSavedMiles = %f, want > 0", res.DistanceSavedMiles)
	}
	if got := order(res); got[0] != "a" {
		t.Errorf("first trip not pinned: order = %v", got)
	}
	if res.Method != geo.MethodLocal || res.Reliable {
		t.Errorf("provenance = %q/%v, want local_approximation/false", res.Method, res.Reliable)
	}
}

func TestChainMatrix_UsesDropoffToPickupEdges(t *testing.T) {
	resolver := geo.NewService(nil, nil, types.Point{Lat: 53.7997, Lng: -1.5492}, "UK")
	estimator := costs.NewEstimator(nil, resolver)

	list := []trips.Trip{
		{ID: "a", Pickup: geo.Location{AddressText: "origin one"}, Dropoff: geo.Location{AddressText: "shared stop"}},
		{ID: "b", Pickup: geo.Location{AddressText: "shared stop"}, Dropoff: geo.Location{AddressText: "end point"}},
	}

	m := routingTestMatrix(t, estimator, list)
	// Trip a's dropoff and trip b's pickup share an address, so the chaining
	// edge (0, 1) must cost zero.
	if d := m.Cost(0, 1).DistanceMiles; d != 0 {
		t.Errorf("chained edge dropoff(a)->pickup(b) = %f, want 0", d)
	}
	// The reverse edge crosses distinct addresses.
	if d := m.Cost(1, 0).DistanceMiles; d <= 0 {
		t.Errorf("chained edge dropoff(b)->pickup(a) = %f, want > 0", d)
	}
}

func routingTestMatrix(t *testing.T, estimator *costs.Estimator, list []trips.Trip) *costs.Matrix {
	t.Helper()
	m := ChainMatrix(context.Background(), estimator, list)
	if len(m.Cells) != len(list) {
		t.Fatalf("chain matrix has %d rows, want %d", len(m.Cells), len(list))
	}
	return m
}
