// README: Batch optimizer; fans out per-driver-per-day sequencing across a date range.
package batch

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"caravan/internal/modules/costs"
	"caravan/internal/modules/routing"
	"caravan/internal/modules/trips"
	"caravan/internal/types"
)

type Service struct {
	estimator   *costs.Estimator
	concurrency int
}

func NewService(estimator *costs.Estimator, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{estimator: estimator, concurrency: concurrency}
}

// Optimize evaluates every (driver, day) pair with at least two trips inside
// [from, to). Units run concurrently — each one's provider failures are its
// own — and write into a pre-sized slice, so the report order is
// deterministic regardless of scheduling.
func (s *Service) Optimize(ctx context.Context, list []trips.Trip, drivers []trips.Driver, from, to time.Time) *Report {
	known := driverSet(drivers)

	type key struct {
		driver types.ID
		date   string
	}
	buckets := make(map[key][]trips.Trip)
	for _, t := range list {
		if t.DriverID == nil {
			continue
		}
		if len(known) > 0 {
			if _, ok := known[*t.DriverID]; !ok {
				continue
			}
		}
		if t.DesiredTime.Before(from) || !t.DesiredTime.Before(to) {
			continue
		}
		k := key{driver: *t.DriverID, date: t.DesiredTime.Format("2006-01-02")}
		buckets[k] = append(buckets[k], t)
	}

	keys := make([]key, 0, len(buckets))
	for k, ts := range buckets {
		if len(ts) < 2 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].driver != keys[j].driver {
			return keys[i].driver < keys[j].driver
		}
		return keys[i].date < keys[j].date
	})

	units := make([]Unit, len(keys))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)
	for i, k := range keys {
		wg.Add(1)
		go func(i int, k key, dayTrips []trips.Trip) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			units[i] = s.optimizeUnit(ctx, k.driver, k.date, dayTrips)
		}(i, k, buckets[k])
	}
	wg.Wait()

	return &Report{Units: units, Stats: aggregate(units)}
}

func (s *Service) optimizeUnit(ctx context.Context, driverID types.ID, date string, dayTrips []trips.Trip) Unit {
	u := Unit{DriverID: driverID, Date: date, TripCount: len(dayTrips)}

	m := routing.ChainMatrix(ctx, s.estimator, dayTrips)
	res, err := routing.Sequence(dayTrips, m)
	if err != nil {
		u.Status = StatusError
		return u
	}

	u.Result = res
	u.EfficiencyScore = efficiencyScore(res.TotalBeforeMiles, res.TotalAfterMiles)
	switch {
	case u.EfficiencyScore < 70:
		u.Status = StatusNeedsOptimization
	case u.EfficiencyScore < 90:
		u.Status = StatusGood
	default:
		u.Status = StatusOptimal
	}
	return u
}

// efficiencyScore compares the optimized tour cost against the original
// booking order. 100 means the current order is already optimal by the
// heuristic's measure. A zero-cost original order scores 100.
func efficiencyScore(currentMiles, optimalMiles float64) int {
	if currentMiles == 0 {
		return 100
	}
	return int(math.Round(optimalMiles / currentMiles * 100))
}

func aggregate(units []Unit) Stats {
	var st Stats
	var scoreSum int
	for _, u := range units {
		if u.Status == StatusError {
			st.UnitsFailed++
			continue
		}
		st.UnitsEvaluated++
		scoreSum += u.EfficiencyScore
		st.TotalDistanceSavedMiles += u.Result.DistanceSavedMiles
		st.TotalTimeSavedEstimate += u.Result.TimeSavedEstimate
		switch u.Status {
		case StatusNeedsOptimization:
			st.NeedsOptimization++
		case StatusGood:
			st.Good++
		case StatusOptimal:
			st.Optimal++
		}
	}
	if st.UnitsEvaluated > 0 {
		st.AverageEfficiency = float64(scoreSum) / float64(st.UnitsEvaluated)
	}
	return st
}

func driverSet(drivers []trips.Driver) map[types.ID]struct{} {
	if len(drivers) == 0 {
		return nil
	}
	set := make(map[types.ID]struct{}, len(drivers))
	for _, d := range drivers {
		set[d.ID] = struct{}{}
	}
	return set
}
