// README: Capacity grouping handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caravan/internal/modules/grouping"
)

type GroupingHandler struct{}

func NewGroupingHandler() *GroupingHandler {
	return &GroupingHandler{}
}

type groupReq struct {
	Trips           []tripPayload `json:"trips"`
	VehicleCapacity int           `json:"vehicle_capacity"`
}

type groupPayload struct {
	TripIDs             []string `json:"trip_ids"`
	TotalPassengers     int      `json:"total_passengers"`
	VehicleCapacity     int      `json:"vehicle_capacity"`
	CapacityUsedPercent float64  `json:"capacity_used_percent"`
	OverCapacity        bool     `json:"over_capacity,omitempty"`
}

// Group partitions a day's trips into vehicle-capacity-bounded clusters.
func (h *GroupingHandler) Group(c *gin.Context) {
	var req groupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Trips) == 0 {
		writeError(c, http.StatusBadRequest, "at least 1 trip is required for grouping")
		return
	}
	list, err := tripsFromPayload(req.Trips)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	groups, err := grouping.GroupByCapacity(list, req.VehicleCapacity)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]groupPayload, len(groups))
	for i, g := range groups {
		out[i] = groupPayload{
			TripIDs:             tripIDs(g.Trips),
			TotalPassengers:     g.TotalPassengers,
			VehicleCapacity:     g.VehicleCapacity,
			CapacityUsedPercent: g.CapacityUsedPercent,
			OverCapacity:        g.OverCapacity,
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"groups": out})
}
