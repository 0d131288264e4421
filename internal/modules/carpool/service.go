// README: Recommendation service; ranks candidates and adds optional AI summaries.
package carpool

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"caravan/internal/modules/geo"
	"caravan/internal/modules/trips"
)

// MinScore is the recommendation cutoff. The scorer itself never filters.
const MinScore = 20

var ErrNoCandidates = errors.New("no candidate trips supplied")

// Summarizer produces a short dispatcher-facing summary of a recommendation
// set. Nil or failing summarizers degrade to no summary.
type Summarizer interface {
	Summarize(ctx context.Context, driver trips.Trip, candidates []Candidate) (string, error)
}

// SummaryQuota gates summary generation on a monthly per-driver allowance.
// A nil quota means summaries are unmetered.
type SummaryQuota interface {
	Use(ctx context.Context, subject string) error
}

type Service struct {
	directions DirectionsProvider
	summarizer Summarizer
	quota      SummaryQuota
}

func NewService(directions DirectionsProvider, summarizer Summarizer, quota SummaryQuota) *Service {
	return &Service{directions: directions, summarizer: summarizer, quota: quota}
}

type Recommendation struct {
	Candidates []Candidate
	Summary    string
}

// Recommend scores every candidate against the driver's trip, drops scores
// below MinScore, and returns the rest ranked best-first. Each candidate's
// detour check is isolated: one directions failure never affects siblings.
func (s *Service) Recommend(ctx context.Context, driver trips.Trip, candidates []trips.Trip) (*Recommendation, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	scored := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		proximity := geo.PostalProximity(driver.Pickup.PostalCode, cand.Pickup.PostalCode)
		detour := s.checkDetour(ctx, driver, cand)
		c := ScoreCompatibility(driver, cand, proximity, detour)
		if c.Score < MinScore {
			continue
		}
		scored = append(scored, c)
	}

	// Rank best-first; trip ID breaks ties so output is deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Trip.ID < scored[j].Trip.ID
	})

	rec := &Recommendation{Candidates: scored}
	if s.summarizer != nil && len(scored) > 0 {
		if s.quota != nil {
			if err := s.quota.Use(ctx, summarySubject(driver)); err != nil {
				log.Printf("ai summary skipped for trip %s: %v", driver.ID, err)
				return rec, nil
			}
		}
		summary, err := s.summarizer.Summarize(ctx, driver, scored)
		if err != nil {
			log.Printf("recommendation summary failed: %v", err)
		} else {
			rec.Summary = summary
		}
	}
	return rec, nil
}

// checkDetour runs the precise route comparison when a directions provider
// is configured. A provider failure skips the check entirely rather than
// defaulting to feasible or infeasible.
func (s *Service) checkDetour(ctx context.Context, driver, candidate trips.Trip) *DetourCheck {
	if s.directions == nil {
		return nil
	}
	legs, err := s.directions.RouteWithWaypoint(ctx,
		locationQuery(driver.Pickup),
		locationQuery(candidate.Pickup),
		locationQuery(driver.Dropoff),
	)
	if err != nil {
		log.Printf("detour check failed for trip %s: %v", candidate.ID, err)
		return nil
	}
	check := EvaluateDetour(legs)
	return &check
}

// summarySubject keys the quota to the assigned driver when there is one,
// falling back to the trip itself for unassigned recommendations.
func summarySubject(driver trips.Trip) string {
	if driver.DriverID != nil {
		return string(*driver.DriverID)
	}
	return string(driver.ID)
}

func locationQuery(loc geo.Location) string {
	parts := []string{strings.TrimSpace(loc.AddressText)}
	if loc.PostalCode != "" {
		parts = append(parts, strings.TrimSpace(loc.PostalCode))
	}
	return strings.Join(parts, ", ")
}
