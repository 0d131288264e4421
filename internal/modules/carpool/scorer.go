// README: Additive compatibility scorer over four independent signals.
package carpool

import (
	"fmt"
	"math"
	"strings"

	"caravan/internal/modules/trips"
)

// Sub-score caps. The four signals sum to at most 100.
const (
	destinationCap = 30
	proximityCap   = 25
	timeWindowCap  = 25
	efficiencyCap  = 20
)

// ScoreCompatibility rates a candidate passenger trip against a driver's
// trip. postalProximity is the coarse 0–100 proximity score from the geo
// package; detour is nil when no precise route check was available. The
// scorer always returns a value, even for zero-compatibility pairs —
// filtering is the caller's job.
func ScoreCompatibility(driver, candidate trips.Trip, postalProximity int, detour *DetourCheck) Candidate {
	c := Candidate{Trip: candidate}
	var total float64

	// Destination similarity: full points for matching or contained
	// destinations, a floor of 5 otherwise so diverse-destination pairs are
	// never fully excluded downstream.
	destDriver := normalizeDestination(driver.Dropoff.AddressText)
	destCand := normalizeDestination(candidate.Dropoff.AddressText)
	if destDriver != "" && destDriver == destCand ||
		destDriver != "" && destCand != "" &&
			(strings.Contains(destDriver, destCand) || strings.Contains(destCand, destDriver)) {
		total += destinationCap
		c.SharedDestination = true
		c.Reasoning = append(c.Reasoning, "heading to the same destination")
	} else {
		total += 5
		c.Reasoning = append(c.Reasoning, "different destinations")
	}

	// Geographic proximity: coarse postal-code score scaled to its cap.
	proximity := float64(postalProximity) * proximityCap / 100.0
	total += proximity
	c.Reasoning = append(c.Reasoning, proximityReason(postalProximity))

	// Time-window overlap on a step function.
	diff := driver.DesiredTime.Sub(candidate.DesiredTime)
	if diff < 0 {
		diff = -diff
	}
	minutes := diff.Minutes()
	switch {
	case minutes <= 15:
		total += timeWindowCap
		c.Reasoning = append(c.Reasoning, "pickup times within 15 minutes")
	case minutes <= 30:
		total += 20
		c.Reasoning = append(c.Reasoning, "pickup times within 30 minutes")
	case minutes <= 60:
		total += 10
		c.Reasoning = append(c.Reasoning, "pickup times within an hour")
	default:
		c.Reasoning = append(c.Reasoning, "pickup times more than an hour apart")
	}

	// Route efficiency, only when a precise detour check ran.
	if detour != nil {
		detourMinutes := detour.DetourDuration.Minutes()
		c.DetourMinutes = &detourMinutes
		if !detour.Feasible {
			c.Reasoning = append(c.Reasoning, "detour exceeds the feasible limit")
		} else {
			switch {
			case detourMinutes < 5:
				total += efficiencyCap
			case detourMinutes < 10:
				total += 15
			default:
				total += 10
			}
			c.Reasoning = append(c.Reasoning, fmt.Sprintf("adds a %.0f minute detour", detourMinutes))
		}
	}

	c.Score = int(math.Round(total))
	return c
}

// normalizeDestination lower-cases and strips non-alphanumerics so cosmetic
// differences ("High St." vs "high st") don't defeat the comparison.
func normalizeDestination(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func proximityReason(postalProximity int) string {
	switch {
	case postalProximity >= 100:
		return "same postcode"
	case postalProximity >= 75:
		return "same postcode district"
	case postalProximity >= 40:
		return "same wider area"
	default:
		return "pickups in different areas"
	}
}
