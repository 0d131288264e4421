// README: Base handler utilities (JSON helpers, payload shapes, error mapping).
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"caravan/internal/modules/carpool"
	"caravan/internal/modules/geo"
	"caravan/internal/modules/grouping"
	"caravan/internal/modules/trips"
	"caravan/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, carpool.ErrNoCandidates), errors.Is(err, grouping.ErrBadCapacity):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trips.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

type locationPayload struct {
	Address    string   `json:"address"`
	PostalCode string   `json:"postal_code,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

type tripPayload struct {
	ID             string          `json:"id"`
	DriverID       string          `json:"driver_id,omitempty"`
	Pickup         locationPayload `json:"pickup"`
	Dropoff        locationPayload `json:"dropoff"`
	PassengerCount int             `json:"passenger_count"`
	DesiredTime    time.Time       `json:"desired_time"`
}

func (p tripPayload) toDomain() (trips.Trip, error) {
	if p.ID == "" {
		return trips.Trip{}, fmt.Errorf("trip id is required")
	}
	if p.Pickup.Address == "" || p.Dropoff.Address == "" {
		return trips.Trip{}, fmt.Errorf("trip %s: pickup and dropoff addresses are required", p.ID)
	}
	if p.PassengerCount < 1 {
		return trips.Trip{}, fmt.Errorf("trip %s: passenger_count must be at least 1", p.ID)
	}
	t := trips.Trip{
		ID:             types.ID(p.ID),
		Pickup:         p.Pickup.toDomain(),
		Dropoff:        p.Dropoff.toDomain(),
		PassengerCount: p.PassengerCount,
		DesiredTime:    p.DesiredTime,
	}
	if p.DriverID != "" {
		id := types.ID(p.DriverID)
		t.DriverID = &id
	}
	return t, nil
}

func (p locationPayload) toDomain() geo.Location {
	loc := geo.Location{AddressText: p.Address, PostalCode: p.PostalCode}
	if p.Lat != nil && p.Lng != nil {
		loc.Position = &types.Point{Lat: *p.Lat, Lng: *p.Lng}
	}
	return loc
}

func tripsFromPayload(payload []tripPayload) ([]trips.Trip, error) {
	out := make([]trips.Trip, 0, len(payload))
	for _, p := range payload {
		t, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func tripIDs(list []trips.Trip) []string {
	ids := make([]string, len(list))
	for i, t := range list {
		ids[i] = string(t.ID)
	}
	return ids
}
