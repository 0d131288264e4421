// README: Cost estimator; distance-matrix provider with great-circle fallback.
package costs

import (
	"context"
	"fmt"
	"log"
	"strings"

	"caravan/internal/modules/geo"
	"caravan/internal/types"
)

const metersPerMile = 1609.344

// WarningLocalMatrix is attached to every matrix produced on the fallback
// path.
const WarningLocalMatrix = "travel costs estimated from great-circle distance; external provider unavailable, reduced reliability"

// MatrixProvider is an external distance-matrix service. A nil provider
// means the estimator runs permanently on the local fallback.
type MatrixProvider interface {
	DistanceMatrix(ctx context.Context, origins, destinations []string) ([][]ProviderCell, error)
}

type Estimator struct {
	provider MatrixProvider
	resolver *geo.Service
}

func NewEstimator(provider MatrixProvider, resolver *geo.Service) *Estimator {
	return &Estimator{provider: provider, resolver: resolver}
}

// EstimateMatrix computes pairwise travel costs between two location sets.
// It never fails: a provider error degrades to the local fallback and the
// result's Method/Reliable/Warning disclose which path produced it.
func (e *Estimator) EstimateMatrix(ctx context.Context, origins, destinations []geo.Location) *Matrix {
	if len(origins) == 0 || len(destinations) == 0 {
		return &Matrix{Cells: [][]Cell{}, Method: geo.MethodProvider, Reliable: true}
	}

	if e.provider != nil {
		m, err := e.providerMatrix(ctx, origins, destinations)
		if err == nil {
			return m
		}
		log.Printf("distance matrix provider failed: %v", err)
	}

	return e.fallbackMatrix(ctx, origins, destinations)
}

// EstimatePair is the scalar form of EstimateMatrix.
func (e *Estimator) EstimatePair(ctx context.Context, a, b geo.Location) (Cell, geo.Method) {
	m := e.EstimateMatrix(ctx, []geo.Location{a}, []geo.Location{b})
	return m.Cells[0][0], m.Method
}

func (e *Estimator) providerMatrix(ctx context.Context, origins, destinations []geo.Location) (*Matrix, error) {
	originAddrs := locationQueries(origins)
	destAddrs := locationQueries(destinations)

	raw, err := e.provider.DistanceMatrix(ctx, originAddrs, destAddrs)
	if err != nil {
		return nil, err
	}
	if len(raw) != len(origins) {
		return nil, fmt.Errorf("provider returned %d rows, want %d", len(raw), len(origins))
	}
	for i, row := range raw {
		if len(row) != len(destinations) {
			return nil, fmt.Errorf("provider row %d has %d cells, want %d", i, len(row), len(destinations))
		}
	}

	cells := make([][]Cell, len(origins))
	for i := range origins {
		cells[i] = make([]Cell, len(destinations))
		for j := range destinations {
			if originAddrs[i] == destAddrs[j] {
				continue // diagonal: same location costs zero
			}
			pc := raw[i][j]
			if !pc.OK {
				// Failed lookup: zero cost, flagged unknown.
				cells[i][j] = Cell{Unknown: true}
				continue
			}
			cells[i][j] = Cell{
				DistanceMiles: float64(pc.Meters) / metersPerMile,
				Duration:      pc.Duration,
			}
		}
	}
	return &Matrix{Cells: cells, Method: geo.MethodProvider, Reliable: true}, nil
}

// fallbackMatrix resolves every location (each resolution isolated, never
// failing) and fills the matrix with great-circle distances. Durations are
// not estimated here; callers derive time heuristically at the reporting
// layer.
func (e *Estimator) fallbackMatrix(ctx context.Context, origins, destinations []geo.Location) *Matrix {
	originPoints := e.resolveAll(ctx, origins)
	destPoints := e.resolveAll(ctx, destinations)

	cells := make([][]Cell, len(origins))
	for i := range origins {
		cells[i] = make([]Cell, len(destinations))
		for j := range destinations {
			cells[i][j] = Cell{
				DistanceMiles: geo.HaversineMiles(
					originPoints[i].Lat, originPoints[i].Lng,
					destPoints[j].Lat, destPoints[j].Lng,
				),
			}
		}
	}
	return &Matrix{
		Cells:    cells,
		Method:   geo.MethodLocal,
		Reliable: false,
		Warning:  WarningLocalMatrix,
	}
}

func (e *Estimator) resolveAll(ctx context.Context, locs []geo.Location) []types.Point {
	points := make([]types.Point, len(locs))
	for i, loc := range locs {
		points[i] = e.resolver.Resolve(ctx, loc).Point
	}
	return points
}

func locationQueries(locs []geo.Location) []string {
	out := make([]string, len(locs))
	for i, loc := range locs {
		parts := []string{strings.TrimSpace(loc.AddressText)}
		if loc.PostalCode != "" {
			parts = append(parts, strings.TrimSpace(loc.PostalCode))
		}
		out[i] = strings.Join(parts, ", ")
	}
	return out
}
