// README: Route optimization handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caravan/internal/modules/costs"
	"caravan/internal/modules/routing"
)

type RouteHandler struct {
	estimator *costs.Estimator
}

func NewRouteHandler(estimator *costs.Estimator) *RouteHandler {
	return &RouteHandler{estimator: estimator}
}

type optimizeRouteReq struct {
	Trips []tripPayload `json:"trips"`
}

type stopPayload struct {
	TripID  string `json:"trip_id"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

type optimizeRouteResp struct {
	OriginalOrder       []string      `json:"original_order"`
	OptimizedOrder      []string      `json:"optimized_order"`
	Stops               []stopPayload `json:"stops"`
	TotalDistanceBefore float64       `json:"total_distance_before_miles"`
	TotalDistanceAfter  float64       `json:"total_distance_after_miles"`
	DistanceSaved       float64       `json:"distance_saved_miles"`
	TimeSavedMinutes    float64       `json:"time_saved_estimate_minutes"`
	Method              string        `json:"method"`
	Reliable            bool          `json:"reliable"`
	Warning             string        `json:"warning,omitempty"`
}

// Optimize sequences a driver's trips into an efficient visiting order.
func (h *RouteHandler) Optimize(c *gin.Context) {
	var req optimizeRouteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Trips) < 2 {
		writeError(c, http.StatusBadRequest, "at least 2 trips are required for route optimization")
		return
	}
	list, err := tripsFromPayload(req.Trips)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	m := routing.ChainMatrix(c.Request.Context(), h.estimator, list)
	res, err := routing.Sequence(list, m)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	stops := make([]stopPayload, len(res.Stops))
	for i, s := range res.Stops {
		stops[i] = stopPayload{TripID: string(s.TripID), Role: string(s.Role), Address: s.Location.AddressText}
	}

	writeJSON(c, http.StatusOK, optimizeRouteResp{
		OriginalOrder:       tripIDs(res.OriginalOrder),
		OptimizedOrder:      tripIDs(res.OptimizedOrder),
		Stops:               stops,
		TotalDistanceBefore: res.TotalBeforeMiles,
		TotalDistanceAfter:  res.TotalAfterMiles,
		DistanceSaved:       res.DistanceSavedMiles,
		TimeSavedMinutes:    res.TimeSavedEstimate.Minutes(),
		Method:              string(res.Method),
		Reliable:            res.Reliable,
		Warning:             res.Warning,
	})
}
