package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"caravan/internal/modules/costs"
)

// MatrixService handles many-to-many travel estimates via the Google
// Distance Matrix API.
type MatrixService struct {
	client *maps.Client
}

// NewMatrixService creates a new MatrixService with the given API key.
func NewMatrixService(apiKey string) (*MatrixService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &MatrixService{client: client}, nil
}

// DistanceMatrix returns per-cell driving costs for every origin/destination
// pair. Cells whose element status is not OK come back with OK=false; the
// caller decides how to treat them.
func (s *MatrixService) DistanceMatrix(ctx context.Context, origins, destinations []string) ([][]costs.ProviderCell, error) {
	resp, err := s.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      origins,
		Destinations: destinations,
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("distance matrix api error: %w", err)
	}
	if len(resp.Rows) != len(origins) {
		return nil, fmt.Errorf("distance matrix returned %d rows, want %d", len(resp.Rows), len(origins))
	}

	out := make([][]costs.ProviderCell, len(resp.Rows))
	for i, row := range resp.Rows {
		if len(row.Elements) != len(destinations) {
			return nil, fmt.Errorf("distance matrix row %d has %d elements, want %d", i, len(row.Elements), len(destinations))
		}
		out[i] = make([]costs.ProviderCell, len(row.Elements))
		for j, el := range row.Elements {
			if el.Status != "OK" {
				out[i][j] = costs.ProviderCell{}
				continue
			}
			out[i][j] = costs.ProviderCell{
				Meters:   el.Distance.Meters,
				Duration: el.Duration,
				OK:       true,
			}
		}
	}
	return out, nil
}
