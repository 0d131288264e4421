// README: Travel-cost matrix shapes shared by the sequencer and batch optimizer.
package costs

import (
	"time"

	"caravan/internal/modules/geo"
)

// Cell is one origin→destination travel cost. Unknown marks a cell whose
// provider lookup failed: it carries zero cost (contributing no ordering
// signal to totals) but selection logic must treat the edge as maximally
// expensive rather than free.
type Cell struct {
	DistanceMiles float64
	Duration      time.Duration
	Unknown       bool
}

// ProviderCell is the raw per-cell result from an external distance-matrix
// provider. OK mirrors the provider's per-cell status.
type ProviderCell struct {
	Meters   int
	Duration time.Duration
	OK       bool
}

// Matrix is an origin×destination table of travel costs. Diagonal entries
// (a location to itself) are zero and all entries are non-negative.
type Matrix struct {
	Cells    [][]Cell
	Method   geo.Method
	Reliable bool
	Warning  string
}

// Cost returns the cell at (i, j).
func (m *Matrix) Cost(i, j int) Cell {
	return m.Cells[i][j]
}
