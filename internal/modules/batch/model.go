// README: Batch optimization report shapes.
package batch

import (
	"time"

	"caravan/internal/modules/routing"
	"caravan/internal/types"
)

type Status string

const (
	StatusNeedsOptimization Status = "needs-optimization"
	StatusGood              Status = "good"
	StatusOptimal           Status = "optimal"
	StatusError             Status = "error"
)

// Unit is one (driver, day) evaluation. A failed unit carries StatusError
// and zero-filled metrics; it never aborts the batch.
type Unit struct {
	DriverID        types.ID
	Date            string
	TripCount       int
	Status          Status
	EfficiencyScore int
	Result          *routing.Result
}

type Stats struct {
	UnitsEvaluated          int
	UnitsFailed             int
	TotalDistanceSavedMiles float64
	TotalTimeSavedEstimate  time.Duration
	AverageEfficiency       float64
	NeedsOptimization       int
	Good                    int
	Optimal                 int
}

type Report struct {
	Units []Unit
	Stats Stats
}
