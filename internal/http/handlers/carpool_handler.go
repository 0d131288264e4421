// README: Carpool recommendation handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caravan/internal/modules/carpool"
)

type CarpoolHandler struct {
	carpool *carpool.Service
}

func NewCarpoolHandler(svc *carpool.Service) *CarpoolHandler {
	return &CarpoolHandler{carpool: svc}
}

type recommendReq struct {
	DriverTrip tripPayload   `json:"driver_trip"`
	Candidates []tripPayload `json:"candidates"`
}

type candidatePayload struct {
	TripID            string   `json:"trip_id"`
	Score             int      `json:"score"`
	Reasoning         []string `json:"reasoning"`
	DetourMinutes     *float64 `json:"detour_minutes,omitempty"`
	SharedDestination bool     `json:"shared_destination"`
}

type recommendResp struct {
	Candidates []candidatePayload `json:"candidates"`
	Summary    string             `json:"summary,omitempty"`
}

// Recommend ranks candidate passengers for compatibility with a driver's trip.
func (h *CarpoolHandler) Recommend(c *gin.Context) {
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	driver, err := req.DriverTrip.toDomain()
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	candidates, err := tripsFromPayload(req.Candidates)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.carpool.Recommend(c.Request.Context(), driver, candidates)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]candidatePayload, len(rec.Candidates))
	for i, cand := range rec.Candidates {
		out[i] = candidatePayload{
			TripID:            string(cand.Trip.ID),
			Score:             cand.Score,
			Reasoning:         cand.Reasoning,
			DetourMinutes:     cand.DetourMinutes,
			SharedDestination: cand.SharedDestination,
		}
	}
	writeJSON(c, http.StatusOK, recommendResp{Candidates: out, Summary: rec.Summary})
}
