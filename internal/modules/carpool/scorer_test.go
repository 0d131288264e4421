package carpool

import (
	"testing"
	"time"

	"caravan/internal/modules/geo"
	"caravan/internal/modules/trips"
	"caravan/internal/types"
)

func scorerTrip(id, dropoffAddr string, at time.Time) trips.Trip {
	return trips.Trip{
		ID:          types.ID(id),
		Pickup:      geo.Location{AddressText: "pickup " + id},
		Dropoff:     geo.Location{AddressText: dropoffAddr},
		DesiredTime: at,
	}
}

func TestScoreCompatibility_Components(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		driverDest string
		candDest   string
		proximity  int
		timeDelta  time.Duration
		detour     *DetourCheck
		wantScore  int
		wantShared bool
	}{
		{
			name:       "perfect match without detour check",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  0,
			// 30 + 25 + 25, efficiency signal skipped
			wantScore:  80,
			wantShared: true,
		},
		{
			name:       "perfect match with short detour",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  0,
			detour:     &DetourCheck{DetourDuration: 3 * time.Minute, Feasible: true},
			wantScore:  100,
			wantShared: true,
		},
		{
			name:       "contained destination counts as shared",
			driverDest: "St James Hospital, Beckett Street",
			candDest:   "St James Hospital",
			proximity:  75,
			timeDelta:  10 * time.Minute,
			// 30 + 18.75 + 25 = 73.75 -> 74
			wantScore:  74,
			wantShared: true,
		},
		{
			name:       "different destinations floor at five",
			driverDest: "St James Hospital",
			candDest:   "Seacroft Clinic",
			proximity:  100,
			timeDelta:  0,
			// 5 + 25 + 25
			wantScore: 55,
		},
		{
			name:       "thirty minute window",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  25 * time.Minute,
			// 30 + 25 + 20
			wantScore:  75,
			wantShared: true,
		},
		{
			name:       "sixty minute window",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  45 * time.Minute,
			// 30 + 25 + 10
			wantScore:  65,
			wantShared: true,
		},
		{
			name:       "beyond an hour scores no time points",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  2 * time.Hour,
			// 30 + 25 + 0
			wantScore:  55,
			wantShared: true,
		},
		{
			name:       "infeasible detour adds nothing",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  0,
			detour:     &DetourCheck{DetourDuration: 20 * time.Minute, Feasible: false},
			wantScore:  80,
			wantShared: true,
		},
		{
			name:       "medium detour scores fifteen",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  0,
			detour:     &DetourCheck{DetourDuration: 7 * time.Minute, Feasible: true},
			wantScore:  95,
			wantShared: true,
		},
		{
			name:       "long feasible detour scores ten",
			driverDest: "St James Hospital",
			candDest:   "St James Hospital",
			proximity:  100,
			timeDelta:  0,
			detour:     &DetourCheck{DetourDuration: 12 * time.Minute, Feasible: true},
			wantScore:  90,
			wantShared: true,
		},
		{
			name:       "worst case stays above zero",
			driverDest: "St James Hospital",
			candDest:   "Seacroft Clinic",
			proximity:  10,
			timeDelta:  3 * time.Hour,
			// 5 + 2.5 + 0 = 7.5 -> 8
			wantScore: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := scorerTrip("d1", tt.driverDest, base)
			cand := scorerTrip("c1", tt.candDest, base.Add(tt.timeDelta))

			got := ScoreCompatibility(driver, cand, tt.proximity, tt.detour)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d (reasoning: %v)", got.Score, tt.wantScore, got.Reasoning)
			}
			if got.SharedDestination != tt.wantShared {
				t.Errorf("SharedDestination = %v, want %v", got.SharedDestination, tt.wantShared)
			}
			if got.Score < 0 || got.Score > 100 {
				t.Errorf("Score %d outside [0, 100]", got.Score)
			}
			if len(got.Reasoning) == 0 {
				t.Error("expected at least one reasoning entry")
			}
		})
	}
}

func TestScoreCompatibility_TimeSymmetry(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	driver := scorerTrip("d1", "St James Hospital", base)
	early := scorerTrip("c1", "St James Hospital", base.Add(-20*time.Minute))
	late := scorerTrip("c2", "St James Hospital", base.Add(20*time.Minute))

	s1 := ScoreCompatibility(driver, early, 100, nil)
	s2 := ScoreCompatibility(driver, late, 100, nil)
	if s1.Score != s2.Score {
		t.Errorf("time-window score not symmetric: %d vs %d", s1.Score, s2.Score)
	}
}

func TestScoreCompatibility_DetourMinutesRecorded(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	driver := scorerTrip("d1", "St James Hospital", base)
	cand := scorerTrip("c1", "St James Hospital", base)

	withCheck := ScoreCompatibility(driver, cand, 100, &DetourCheck{DetourDuration: 6 * time.Minute, Feasible: true})
	if withCheck.DetourMinutes == nil || *withCheck.DetourMinutes != 6 {
		t.Errorf("DetourMinutes = %v, want 6", withCheck.DetourMinutes)
	}

	without := ScoreCompatibility(driver, cand, 100, nil)
	if without.DetourMinutes != nil {
		t.Errorf("DetourMinutes should be nil without a check, got %v", *without.DetourMinutes)
	}
}

func TestNormalizeDestination(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "St. James Hospital", want: "stjameshospital"},
		{in: "ST JAMES HOSPITAL", want: "stjameshospital"},
		{in: "High St.", want: "highst"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := normalizeDestination(tt.in); got != tt.want {
			t.Errorf("normalizeDestination(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
